package lexicon

import "time"

// Built-in tables. New copies them into the Lexicon; nothing reads these
// directly so an extension can never leak into the defaults.

// typoTable maps misspellings to canonical words. Keys are whole words as
// they appear after normalization. Numbers are never keys.
var typoTable = map[string]string{
	// contract
	"contrct": "contract", "contarct": "contract", "contarcts": "contracts",
	"contracs": "contracts", "contrcts": "contracts", "kontrakt": "contract",
	"kontract": "contract", "ctrct": "contract", "conract": "contract",
	"cntrct": "contract", "contrac": "contract", "contracct": "contract",
	"awrd": "award",

	// verbs
	"creat": "create", "creates": "create", "creating": "create", "creatd": "created",
	"mak": "make", "maek": "make", "makeing": "making",
	"genrate": "generate", "genert": "generate",
	"shwo": "show", "shw": "show", "sho": "show", "hsow": "show",
	"lsit": "list", "lst": "list", "dispaly": "display", "gte": "get", "fnd": "find",

	// detail words
	"infro": "info", "detials": "details", "detalis": "details", "deatils": "details",
	"summry": "summary", "informaton": "information",

	// customer and account
	"custmor": "customer", "cstomer": "customer", "custmer": "customer",
	"custommer": "customer", "costumer": "customer", "cust": "customer",
	"cstmr": "customer", "custmers": "customers", "customr": "customer",
	"accunt": "account", "acount": "account", "acc": "account", "acct": "account",
	"accnt": "account",

	// identifiers
	"numer": "number", "numbr": "number", "nmber": "number",

	// status
	"statuz": "status", "statuss": "status", "staus": "status", "stauts": "status",
	"actve": "active", "activ": "active", "exipred": "expired", "expird": "expired",
	"discontnud": "discontinued", "discntinued": "discontinued",

	// temporal
	"aftr": "after", "btwn": "between", "mnth": "month", "befor": "before",
	"untill": "until", "efective": "effective", "efffective": "effective",
	"todai": "today", "ystrday": "yesterday",

	// parts
	"prts": "parts", "parst": "parts", "partz": "parts", "prt": "part",
	"prduct": "product", "invoce": "invoice", "invoic": "invoice",
	"pric": "price", "prise": "price", "pricng": "pricing",
	"leed": "lead", "lede": "lead",

	// contract fields
	"expir": "expire", "expiry": "expiration", "experation": "expiration",
	"expiraton": "expiration", "paymet": "payment", "lenght": "length", "typ": "type",

	// failures
	"faild": "failed", "filde": "failed", "faield": "failed", "falied": "failed",
	"eror": "error", "errror": "error", "erorr": "error", "isses": "issues",
	"validdation": "validation", "loadded": "loaded", "misssing": "missing",

	// help
	"hlp": "help", "halp": "help", "hw": "how", "wat": "what", "stps": "steps",
	"proces": "process",

	// chat shorthand
	"pls": "please", "plz": "please", "u": "you", "ur": "your", "yu": "you", "mee": "me",
	"chek": "check", "teh": "the",

	// customers
	"boieng": "boeing", "honeywel": "honeywell", "corprate": "corporate",
}

// translationTable is the fixed term-substitution table for Spanish, French
// and German contract vocabulary. No other translation happens.
var translationTable = map[string]string{
	// es
	"contrato": "contract", "contratos": "contracts", "cliente": "customer",
	"clientes": "customers", "precio": "price", "fecha": "date", "estado": "status",
	"pieza": "part", "piezas": "parts", "numero": "number", "mostrar": "show",
	"ayuda": "help", "crear": "create",
	// fr
	"contrat": "contract", "contrats": "contracts", "prix": "price", "statut": "status",
	"afficher": "show", "aide": "help", "pieces": "parts",
	// de
	"vertrag": "contract", "vertrage": "contracts", "vertraege": "contracts",
	"kunde": "customer", "kunden": "customers", "preis": "price", "datum": "date",
	"teil": "part", "teile": "parts", "nummer": "number", "zeigen": "show",
	"hilfe": "help", "erstellen": "create",
}

// splitTable separates words users commonly glue together
var splitTable = map[string]string{
	"createcontract":  "create contract",
	"newcontract":     "new contract",
	"contractstatus":  "contract status",
	"contractnumber":  "contract number",
	"contractdetails": "contract details",
	"contractinfo":    "contract info",
	"customernumber":  "customer number",
	"customername":    "customer name",
	"accountnumber":   "account number",
	"partnumber":      "part number",
	"partsinfo":       "parts info",
	"failedparts":     "failed parts",
	"leadtime":        "lead time",
	"effectivedate":   "effective date",
	"expirationdate":  "expiration date",
	"createdby":       "created by",
	"howto":           "how to",
}

// contractionTable is applied before the typo table. The normalizer has
// already removed apostrophes, so keys carry none.
var contractionTable = map[string]string{
	"whats":    "what is",
	"thats":    "that is",
	"wheres":   "where is",
	"whens":    "when is",
	"hows":     "how is",
	"whos":     "who is",
	"theres":   "there is",
	"dont":     "do not",
	"doesnt":   "does not",
	"didnt":    "did not",
	"cant":     "cannot",
	"wont":     "will not",
	"isnt":     "is not",
	"arent":    "are not",
	"wasnt":    "was not",
	"havent":   "have not",
	"im":       "i am",
	"ive":      "i have",
	"youre":    "you are",
	"shouldnt": "should not",
}

// classWords lists the keyword vocabulary for each class. A word may sit in
// several classes; Tag resolves it with tagPrecedence.
var classWords = map[Class][]string{
	ClassContract: {"contract", "contracts", "award", "awards", "agreement", "agreements"},
	ClassPart:     {"part", "parts", "component", "components", "sku", "skus"},
	ClassCustomer: {"customer", "customers", "client", "clients", "account", "accounts"},
	ClassCreator:  {"created", "creator", "author", "owner", "by"},
	ClassHelp:     {"help", "guide", "guidance", "assist", "assistance", "instructions", "tutorial", "explain"},
	ClassCreate:   {"create", "make", "generate", "draft", "build"},
	ClassSteps:    {"steps", "step", "process", "procedure", "walkthrough", "workflow"},
	ClassFailure: {
		"failed", "failure", "failures", "fail", "failing", "error", "errors",
		"invalid", "rejected", "validation", "issue", "issues", "problem", "problems", "missing",
	},
	ClassStatus: {
		"active", "inactive", "expired", "pending", "draft", "terminated",
		"cancelled", "canceled", "approved", "closed",
	},
	ClassRelative:    {"today", "yesterday", "last", "this", "current", "previous"},
	ClassTemporal:    {"after", "since", "from", "before", "until", "till", "prior", "in", "during", "of", "between", "on", "onwards", "onward", "later", "earlier"},
	ClassConjunction: {"and", "with", "plus", "also", "including"},
	ClassCommand: {
		"show", "get", "list", "display", "find", "fetch", "give", "view",
		"retrieve", "search", "pull", "lookup", "check", "see",
	},
	ClassQuestion: {"what", "which", "who", "when", "where", "how", "why"},
	ClassFiller:   {"number", "numbers", "no", "num", "nbr", "id"},
	ClassStop: {
		"the", "a", "an", "for", "to", "me", "my", "all", "please", "is", "are",
		"was", "were", "do", "does", "any", "i", "you", "your", "can", "could",
		"would", "us", "along", "under", "about", "info", "information",
		"details", "summary", "data", "record", "records", "at", "that", "it",
	},
}

// tagPrecedence decides the class of a word listed under several classes.
// "draft" is both a status value and a create verb; as a status it is far
// more common in lookups.
var tagPrecedence = []Class{
	ClassContract, ClassPart, ClassCustomer, ClassCreator, ClassHelp,
	ClassStatus, ClassCreate, ClassSteps, ClassFailure, ClassRelative,
	ClassTemporal, ClassConjunction, ClassCommand, ClassQuestion,
	ClassFiller, ClassStop,
}

// monthTable maps full and abbreviated month names
var monthTable = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"jun": time.June, "jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// creatorTable maps known contract creators to their canonical user names
var creatorTable = map[string]string{
	"vinod":   "VINOD",
	"mary":    "MARY",
	"john":    "JOHN",
	"sarah":   "SARAH",
	"michael": "MICHAEL",
	"priya":   "PRIYA",
	"raj":     "RAJ",
	"david":   "DAVID",
	"admin":   "ADMIN",
}

// customerTable maps known customer phrases to their canonical names
var customerTable = map[string]string{
	"boeing":                  "BOEING",
	"honeywell":               "HONEYWELL",
	"honeywell international": "HONEYWELL INTERNATIONAL INC.",
	"siemens":                 "SIEMENS",
	"lockheed":                "LOCKHEED MARTIN",
	"lockheed martin":         "LOCKHEED MARTIN",
	"raytheon":                "RAYTHEON",
	"northrop grumman":        "NORTHROP GRUMMAN",
	"general electric":        "GENERAL ELECTRIC",
	"airbus":                  "AIRBUS",
	"pratt and whitney":       "PRATT & WHITNEY",
	"textron":                 "TEXTRON",
}

// businessTermTable maps free-text field references to canonical columns.
// Multi-word keys are matched longest first.
var businessTermTable = map[string]string{
	"price":                  "PRICE",
	"prices":                 "PRICE",
	"pricing":                "PRICE",
	"cost":                   "PRICE",
	"costs":                  "PRICE",
	"moq":                    "MOQ",
	"minimum order":          "MOQ",
	"minimum order quantity": "MOQ",
	"min order":              "MOQ",
	"uom":                    "UOM",
	"unit of measure":        "UOM",
	"lead time":              "LEAD_TIME",
	"delivery time":          "LEAD_TIME",
	"effective date":         "EFFECTIVE_DATE",
	"start date":             "EFFECTIVE_DATE",
	"effective":              "EFFECTIVE_DATE",
	"expiration date":        "EXPIRATION_DATE",
	"expiration":             "EXPIRATION_DATE",
	"end date":               "EXPIRATION_DATE",
	"expire":                 "EXPIRATION_DATE",
	"price expiration date":  "PRICE_EXPIRATION_DATE",
	"contract type":          "CONTRACT_TYPE",
	"contract name":          "CONTRACT_NAME",
	"title":                  "TITLE",
	"description":            "DESCRIPTION",
	"comments":               "COMMENTS",
	"payment terms":          "PAYMENT_TERMS",
	"status":                 "STATUS",
	"error column":           "ERROR_COLUMN",
	"reason":                 "REASON",
	"invoice part":           "INVOICE_PART_NUMBER",
	"customer name":          "CUSTOMER_NAME",
	"customer number":        "CUSTOMER_NUMBER",
	"account number":         "CUSTOMER_NUMBER",
	"contract number":        "CONTRACT_NUMBER",
	"part number":            "PART_NUMBER",
}

// identifierFields are business terms that name the thing being looked up
// rather than a column to show; they are only display requests when no
// value follows them.
var identifierFields = []string{"CUSTOMER_NAME", "CUSTOMER_NUMBER", "CONTRACT_NUMBER", "PART_NUMBER"}

// domainSignals feed multi-intent detection
var domainSignals = map[Signal][]string{
	SignalContract: {"contract", "contracts", "award", "agreement", "effective", "expiration", "customer", "account"},
	SignalParts:    {"part", "parts", "component", "components", "price", "pricing", "lead", "moq", "uom"},
	SignalFailure:  {"failed", "failure", "failures", "error", "errors", "issue", "issues", "problem", "problems", "rejected", "invalid"},
}
