// Package draft collects the fields of a new contract over several turns
// of a conversation.
//
// A draft starts when a query asks the assistant to create a contract. It
// then asks for one field per turn, in Steps order, until every required
// field is present. A single comma-separated answer
//
//	account number, contract name, title, description[, comments[, price list yes/no]]
//
// fills the whole draft at once. A draft idles out after IdleTimeout.
package draft

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// IdleTimeout is how long a draft waits for the next answer
const IdleTimeout = 10 * time.Minute

// Field names one collected value
type Field string

const (
	FieldAccountNumber Field = "ACCOUNT_NUMBER"
	FieldContractName  Field = "CONTRACT_NAME"
	FieldTitle         Field = "TITLE"
	FieldDescription   Field = "DESCRIPTION"
	FieldComments      Field = "COMMENTS"
	FieldPriceList     Field = "IS_PRICELIST"
)

// Steps is the order fields are asked for
var Steps = []Field{
	FieldAccountNumber,
	FieldContractName,
	FieldTitle,
	FieldDescription,
	FieldComments,
	FieldPriceList,
}

// minCompleteParts is how many comma-separated values a one-shot answer
// needs: account number, name, title and description
const minCompleteParts = 4

type rule struct {
	prompt string
	tag    string
	hint   string
}

var rules = map[Field]rule{
	FieldAccountNumber: {
		prompt: "Please provide the customer account number:",
		tag:    "required,number,min=6,max=12",
		hint:   "an account number is 6 to 12 digits",
	},
	FieldContractName: {
		prompt: "Please provide a name for the contract:",
		tag:    "required,min=3,max=100",
		hint:   "a contract name is 3 to 100 characters",
	},
	FieldTitle: {
		prompt: "Please provide a title for the contract:",
		tag:    "required,min=3,max=200",
		hint:   "a title is 3 to 200 characters",
	},
	FieldDescription: {
		prompt: "Please provide a description for the contract:",
		tag:    "required,min=3,max=500",
		hint:   "a description is 3 to 500 characters",
	},
	FieldComments: {
		prompt: "Any comments? (reply \"none\" to skip)",
		tag:    "max=500",
		hint:   "comments are at most 500 characters",
	},
	FieldPriceList: {
		prompt: "Is this a price list contract? (yes/no)",
		tag:    "oneof=YES NO",
		hint:   "answer yes or no",
	},
}

var (
	validate    = validator.New(validator.WithRequiredStructEnabled())
	digitRun    = regexp.MustCompile(`\d+`)
	cancelWords = map[string]bool{"cancel": true, "stop": true, "quit": true, "exit": true, "abort": true}
	skipWords   = map[string]bool{"none": true, "skip": true, "no": true, "n/a": true, "-": true}
)

// Status is the lifecycle state of a draft
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
)

// Contract is a completed draft
type Contract struct {
	AccountNumber string `json:"accountNumber" yaml:"accountNumber" validate:"required,number,min=6,max=12"`
	Name          string `json:"contractName" yaml:"contractName" validate:"required,min=3,max=100"`
	Title         string `json:"title" yaml:"title" validate:"required,min=3,max=200"`
	Description   string `json:"description" yaml:"description" validate:"required,min=3,max=500"`
	Comments      string `json:"comments,omitempty" yaml:"comments,omitempty" validate:"max=500"`
	PriceList     bool   `json:"isPriceList" yaml:"isPriceList"`
}

// Reply is sent after every turn of a draft
type Reply struct {
	Type      string           `json:"type"`
	DraftID   string           `json:"draftId"`
	Status    Status           `json:"status"`
	Step      Field            `json:"step,omitempty"`
	Prompt    string           `json:"prompt,omitempty"`
	Error     string           `json:"error,omitempty"`
	Collected map[Field]string `json:"collected"`
	Contract  *Contract        `json:"contract,omitempty"`
}

// ReplyType tells a draft reply apart from a classification result
const ReplyType = "draft"

// Draft is one contract being collected. It belongs to a single
// conversation and is not safe for concurrent use.
type Draft struct {
	ID     string
	Query  string
	Status Status

	step         int
	values       map[Field]string
	contract     *Contract
	lastActivity time.Time
}

// Start begins a draft for query and returns the first prompt
func Start(query string) (*Draft, Reply) {
	d := &Draft{
		ID:           newID(),
		Query:        query,
		Status:       StatusInProgress,
		values:       make(map[Field]string, len(Steps)),
		lastActivity: timeNow(),
	}
	return d, d.reply("")
}

// Active reports whether the draft still takes answers
func (d *Draft) Active() bool {
	if d.Status == StatusInProgress && timeNow().Sub(d.lastActivity) > IdleTimeout {
		d.Status = StatusExpired
	}
	return d.Status == StatusInProgress
}

// Contract returns the collected contract once the draft is complete
func (d *Draft) Contract() (*Contract, bool) {
	return d.contract, d.contract != nil
}

// Answer takes the reply to the current prompt
func (d *Draft) Answer(input string) Reply {
	if !d.Active() {
		return d.reply("this draft is no longer active; ask to create a contract to start again")
	}
	d.lastActivity = timeNow()

	input = strings.TrimSpace(input)
	if cancelWords[strings.ToLower(input)] {
		d.Status = StatusCancelled
		return d.reply("")
	}

	if c, ok := ParseComplete(input); ok {
		d.fill(c)
		d.finish(c)
		return d.reply("")
	}

	field := Steps[d.step]
	value := normalizeValue(field, input)
	if err := validate.Var(value, rules[field].tag); err != nil {
		return d.reply(fmt.Sprintf("%s: %s", field, rules[field].hint))
	}
	d.values[field] = value
	d.step++

	if d.step == len(Steps) {
		c := d.collected()
		if err := validate.Struct(c); err != nil {
			return d.reply(err.Error())
		}
		d.finish(c)
	}
	return d.reply("")
}

// ParseComplete reads a one-shot comma-separated answer. The first value
// must be an account number of 6 or more digits and the next three must be
// non-empty; comments and the price list flag are optional.
func ParseComplete(input string) (*Contract, bool) {
	parts := strings.Split(input, ",")
	if len(parts) < minCompleteParts {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	c := &Contract{
		AccountNumber: parts[0],
		Name:          parts[1],
		Title:         parts[2],
		Description:   parts[3],
	}
	if len(parts) > 4 {
		c.Comments = normalizeValue(FieldComments, parts[4])
	}
	if len(parts) > 5 {
		c.PriceList = normalizeValue(FieldPriceList, parts[5]) == "YES"
	}
	if err := validate.Struct(c); err != nil {
		return nil, false
	}
	return c, true
}

func normalizeValue(f Field, input string) string {
	switch f {
	case FieldAccountNumber:
		if m := digitRun.FindString(input); m != "" {
			return m
		}
	case FieldComments:
		if skipWords[strings.ToLower(input)] {
			return ""
		}
	case FieldPriceList:
		switch strings.ToLower(input) {
		case "yes", "y", "true":
			return "YES"
		case "no", "n", "false", "":
			return "NO"
		}
		return strings.ToUpper(input)
	}
	return input
}

func (d *Draft) fill(c *Contract) {
	d.values[FieldAccountNumber] = c.AccountNumber
	d.values[FieldContractName] = c.Name
	d.values[FieldTitle] = c.Title
	d.values[FieldDescription] = c.Description
	d.values[FieldComments] = c.Comments
	d.values[FieldPriceList] = yesNo(c.PriceList)
	d.step = len(Steps)
}

func (d *Draft) finish(c *Contract) {
	d.contract = c
	d.Status = StatusComplete
}

func (d *Draft) collected() *Contract {
	return &Contract{
		AccountNumber: d.values[FieldAccountNumber],
		Name:          d.values[FieldContractName],
		Title:         d.values[FieldTitle],
		Description:   d.values[FieldDescription],
		Comments:      d.values[FieldComments],
		PriceList:     d.values[FieldPriceList] == "YES",
	}
}

func (d *Draft) reply(errMsg string) Reply {
	r := Reply{
		Type:      ReplyType,
		DraftID:   d.ID,
		Status:    d.Status,
		Error:     errMsg,
		Collected: make(map[Field]string, len(d.values)),
		Contract:  d.contract,
	}
	for k, v := range d.values {
		r.Collected[k] = v
	}
	if d.Status == StatusInProgress {
		r.Step = Steps[d.step]
		r.Prompt = rules[r.Step].prompt
	}
	return r
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
