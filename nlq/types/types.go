// Package types holds the value types shared by the classification stages.
package types

// Domain is the top-level routing target of a query
type Domain string

const (
	DomainContracts   Domain = "CONTRACTS"
	DomainParts       Domain = "PARTS"
	DomainHelp        Domain = "HELP"
	DomainMultiIntent Domain = "MULTI_INTENT"
	DomainError       Domain = "ERROR"
)

// Intent is the named purpose of a query
type Intent string

const (
	IntentContractsByNumber   Intent = "CONTRACTS_BY_NUMBER"
	IntentContractsByCustomer Intent = "CONTRACTS_BY_CUSTOMER"
	IntentContractsByUser     Intent = "CONTRACTS_BY_USER"
	IntentContractsByDates    Intent = "CONTRACTS_BY_DATES"
	IntentContractsGeneral    Intent = "CONTRACTS_GENERAL"

	IntentPartsWithContract Intent = "PARTS_WITH_CONTRACT"
	IntentPartsAnalysis     Intent = "PARTS_ANALYSIS"
	IntentPartsLookup       Intent = "PARTS_LOOKUP"

	IntentHelpCreateContract    Intent = "HELP_CREATE_CONTRACT"
	IntentStepsCreateContract   Intent = "STEPS_CREATE_CONTRACT"
	IntentHelpCreateContractBot Intent = "HELP_CREATE_CONTRACT_BOT"
	IntentHelpGeneral           Intent = "HELP_GENERAL"

	IntentGeneralQuery Intent = "GENERAL_QUERY"
	IntentMultiIntent  Intent = "MULTI_INTENT"
	IntentError        Intent = "ERROR"
)

// Action identifiers consumed by the execution layer
const (
	ActionContractsByCustomerNumber = "contracts_by_customerNumber"
	ActionContractsByContractNumber = "contracts_by_contractNumber"
	ActionContractsByCustomerName   = "contracts_by_customerName"
	ActionContractsByCreatedBy      = "contracts_by_createdBy"
	ActionContractsByUser           = "contracts_by_user"
	ActionContractsByDates          = "contracts_by_dates"
	ActionContractsByFilter         = "contracts_by_filter"

	ActionPartsByUser       = "parts_by_user"
	ActionPartsByContract   = "parts_by_contract"
	ActionPartsByPartNumber = "parts_by_partNumber"
	ActionPartsByCustomer   = "parts_by_customer"

	ActionHelpCreateContract    = "help_create_contract"
	ActionHelpContractSteps     = "help_contract_steps"
	ActionHelpCreateContractBot = "help_create_contract_bot"
	ActionHelpGeneral           = "help_general"

	ActionErrorHandling = "error_handling"
)

// Attr names an extracted entity
type Attr string

const (
	AttrContractNumber Attr = "contractNumber"
	AttrCustomerNumber Attr = "customerNumber"
	AttrAccountNumber  Attr = "accountNumber"
	AttrPartNumber     Attr = "partNumber"
	AttrCustomerName   Attr = "customerName"
	AttrCreatedBy      Attr = "createdBy"
	AttrAfterYear      Attr = "afterYear"
	AttrBeforeYear     Attr = "beforeYear"
	AttrInYear         Attr = "inYear"
	AttrStartYear      Attr = "startYear"
	AttrEndYear        Attr = "endYear"
	AttrSpecificDate   Attr = "specificDate"
	AttrAfterDate      Attr = "afterDate"
	AttrBeforeDate     Attr = "beforeDate"
	AttrStartDate      Attr = "startDate"
	AttrEndDate        Attr = "endDate"
	AttrStatus         Attr = "status"
	AttrIntent         Attr = "intent"
)

// TemporalAttrs are the attributes produced by temporal extraction
var TemporalAttrs = []Attr{
	AttrAfterYear, AttrBeforeYear, AttrInYear, AttrStartYear, AttrEndYear,
	AttrSpecificDate, AttrAfterDate, AttrBeforeDate, AttrStartDate, AttrEndDate,
}

// Source is the provenance of an entity or filter
type Source string

const (
	SourceUserInput Source = "user_input"
	SourceInferred  Source = "inferred"
)

// Severity of a result error
type Severity string

const (
	SeverityBlocker Severity = "BLOCKER"
	SeverityWarning Severity = "WARNING"
)

// Error codes
const (
	CodeEmptyInput            = "EMPTY_INPUT"
	CodeProcessingError       = "PROCESSING_ERROR"
	CodeLowConfidence         = "LOW_CONFIDENCE"
	CodeMissingIdentifier     = "MISSING_IDENTIFIER"
	CodeInvalidContractNumber = "INVALID_CONTRACT_NUMBER"
)

// Filter columns
const (
	FieldAwardNumber       = "AWARD_NUMBER"
	FieldLoadedCPNumber    = "LOADED_CP_NUMBER"
	FieldCustomerNumber    = "CUSTOMER_NUMBER"
	FieldCustomerName      = "CUSTOMER_NAME"
	FieldInvoicePartNumber = "INVOICE_PART_NUMBER"
	FieldCreatedBy         = "CREATED_BY"
	FieldCreateDate        = "CREATE_DATE"
	FieldStatus            = "STATUS"
)

// IsContractNumberField reports whether field carries a contract number
func IsContractNumberField(field string) bool {
	return field == FieldAwardNumber || field == FieldLoadedCPNumber
}

// Clause is a piece of query text scheduled for single-clause
// classification. Depth 0 is the whole query; split clauses have depth 1
// and are never split again.
type Clause struct {
	Text  string
	Depth int
}

// MaxClauseDepth is the deepest clause that may still be split
const MaxClauseDepth = 0

// Splittable reports whether multi-intent splitting may be applied to c
func (c Clause) Splittable() bool {
	return c.Depth <= MaxClauseDepth
}
