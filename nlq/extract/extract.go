// Package extract pulls identifiers, names, dates and requested columns
// out of a tagged query.
//
// Identifier extraction runs context rules in a fixed order and the first
// rule to claim a number wins:
//
//  1. customer/account context ("customer 12345", "for account ...")
//  2. part context (a part keyword is present)
//  3. contract context (a contract keyword is present)
//  4. no context, where the shape and length of the token decide
//
// A customer context suppresses contract numbers for the whole clause, so
// a single clause never carries both a customer and a contract number.
// Temporal, creator, customer-name, status and business-term extraction
// run regardless of which rule fired.
package extract

import (
	"strings"
	"time"

	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// timeNow is replaced in tests
var timeNow = time.Now

// Rule names the context rule that claimed the identifiers of a clause
type Rule string

const (
	RuleCustomer Rule = "customer"
	RulePart     Rule = "part"
	RuleContract Rule = "contract"
	RuleNone     Rule = "none"
)

// Config holds the numeric length heuristics
type Config struct {
	// ContractMinDigits is the shortest bare number taken as a contract
	// number without a keyword right in front of it
	ContractMinDigits int
	// CustomerMinDigits and CustomerMaxDigits bound bare numbers taken as
	// customer numbers when no keyword gives context
	CustomerMinDigits int
	CustomerMaxDigits int
}

// DefaultConfig returns the default length heuristics
func DefaultConfig() Config {
	return Config{ContractMinDigits: 6, CustomerMinDigits: 4, CustomerMaxDigits: 5}
}

// keywordNumberMinDigits is the shortest number accepted right after a
// contract keyword ("contract 12345")
const keywordNumberMinDigits = 4

// Extraction is the outcome of extracting one clause
type Extraction struct {
	Entities        types.Entities
	Context         Rule
	CustomerContext bool

	// token positions already claimed as identifiers
	used map[int]bool
}

func (ex *Extraction) claim(i int) { ex.used[i] = true }

func (ex *Extraction) claimed(i int) bool { return ex.used[i] }

// Extractor extracts entities from tagged tokens. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	lex *lexicon.Lexicon
	cfg Config
}

// New creates an extractor; a nil lex uses lexicon.Default()
func New(lex *lexicon.Lexicon, cfg Config) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lex: lex, cfg: cfg}
}

// Extract runs every rule over toks
func (x *Extractor) Extract(toks token.Tokens) *Extraction {
	ex := &Extraction{Context: RuleNone, used: make(map[int]bool)}

	if x.customerContext(toks, ex) {
		ex.Context = RuleCustomer
		ex.CustomerContext = true
	}
	switch {
	case toks.Has(token.Part):
		if ex.Context == RuleNone {
			ex.Context = RulePart
		}
		x.partContext(toks, ex)
	case ex.CustomerContext:
	case toks.Has(token.Contract):
		ex.Context = RuleContract
		x.contractContext(toks, ex)
	default:
		x.noContext(toks, ex)
	}

	x.temporal(toks, ex)
	x.creator(toks, ex)
	x.customerName(toks, ex)
	x.status(toks, ex)
	x.businessTerms(toks, ex)
	return ex
}

// customerContext applies rule 1 and reports whether a customer or
// account context is present
func (x *Extractor) customerContext(toks token.Tokens, ex *Extraction) bool {
	e := &ex.Entities
	forAt := -1
	for i, t := range toks {
		if !t.Is(token.Customer) {
			continue
		}
		x.customerNameAfter(toks, i, ex)

		j := skip(toks, i+1, token.Filler)
		if n := toks.At(j); n.Is(token.Number, token.Year) {
			x.setCustomerNumber(e, n.Value)
			ex.claim(j)
			return true
		}
		if forAt < 0 && toks.At(i-1).Value == "for" {
			forAt = i
		}
	}
	if forAt < 0 {
		return false
	}

	for j := forAt + 1; j < len(toks); j++ {
		if !toks[j].Is(token.Number) {
			continue
		}
		if prev := toks.At(skipBack(toks, j-1, token.Filler)); prev.Is(token.Contract, token.Part) {
			continue
		}
		x.setCustomerNumber(e, toks[j].Value)
		ex.claim(j)
		break
	}
	return true
}

func (x *Extractor) setCustomerNumber(e *types.Entities, n string) {
	e.Set(types.AttrCustomerNumber, n, types.SourceUserInput)
	e.Set(types.AttrAccountNumber, n, types.SourceInferred)
}

// customerNameAfter takes the name following a customer keyword. A known
// customer phrase always counts ("customer honeywell international"); an
// unknown word only after an explicit cue ("customer name acme", "customer
// named acme").
func (x *Extractor) customerNameAfter(toks token.Tokens, i int, ex *Extraction) {
	named := false
	j := i + 1
	for ; j < len(toks); j++ {
		if nameCues[toks[j].Value] {
			named = true
			continue
		}
		if !toks[j].Is(token.Filler, token.Stop) {
			break
		}
	}
	if name, n := x.customerPhraseAt(toks, j); n > 0 {
		ex.Entities.Set(types.AttrCustomerName, name, types.SourceUserInput)
		return
	}
	if !named {
		return
	}
	t := toks.At(j)
	if t.Is(token.Word, token.Name) && len(t.Value) >= 3 {
		ex.Entities.Set(types.AttrCustomerName, strings.ToUpper(t.Value), types.SourceUserInput)
	}
}

var nameCues = map[string]bool{"name": true, "named": true, "called": true}

// partContext applies rule 2
func (x *Extractor) partContext(toks token.Tokens, ex *Extraction) {
	e := &ex.Entities
	for i, t := range toks {
		if t.Is(token.Code) && IsPartCode(t.Value) {
			e.Set(types.AttrPartNumber, strings.ToUpper(t.Value), types.SourceUserInput)
			ex.claim(i)
			break
		}
	}
	if !e.Has(types.AttrPartNumber) {
		for i, t := range toks {
			if !t.Is(token.Part) {
				continue
			}
			j := skip(toks, i+1, token.Filler)
			if n := toks.At(j); n.Is(token.Number) && !ex.claimed(j) {
				e.Set(types.AttrPartNumber, n.Value, types.SourceUserInput)
				ex.claim(j)
				break
			}
		}
	}

	if ex.CustomerContext {
		return
	}
	if toks.Has(token.Contract) {
		x.contractContext(toks, ex)
		return
	}
	x.longNumberAsContract(toks, ex)
}

// contractContext applies rule 3: a number or code right after a contract
// keyword, then any long bare number or contract-shaped code
func (x *Extractor) contractContext(toks token.Tokens, ex *Extraction) {
	e := &ex.Entities
	for i, t := range toks {
		if !t.Is(token.Contract) {
			continue
		}
		j := skip(toks, i+1, token.Filler, token.Stop)
		if ex.claimed(j) {
			continue
		}
		n := toks.At(j)
		if (n.Is(token.Number) && len(n.Value) >= keywordNumberMinDigits) || n.Is(token.Code) {
			e.Set(types.AttrContractNumber, strings.ToUpper(n.Value), types.SourceUserInput)
			ex.claim(j)
			return
		}
	}
	if x.longNumberAsContract(toks, ex) {
		return
	}
	x.contractCode(toks, ex)
}

// noContext applies rule 4: shape first, then length
func (x *Extractor) noContext(toks token.Tokens, ex *Extraction) {
	if x.contractCode(toks, ex) {
		return
	}
	for i, t := range toks {
		if t.Is(token.Code) && IsPartCode(t.Value) {
			ex.Entities.Set(types.AttrPartNumber, strings.ToUpper(t.Value), types.SourceUserInput)
			ex.claim(i)
			return
		}
	}
	if x.longNumberAsContract(toks, ex) {
		return
	}
	for i, t := range toks {
		if t.Is(token.Number) && len(t.Value) >= x.cfg.CustomerMinDigits && len(t.Value) <= x.cfg.CustomerMaxDigits {
			ex.Entities.Set(types.AttrCustomerNumber, t.Value, types.SourceUserInput)
			ex.claim(i)
			return
		}
	}
}

func (x *Extractor) longNumberAsContract(toks token.Tokens, ex *Extraction) bool {
	for i, t := range toks {
		if t.Is(token.Number) && !ex.claimed(i) && len(t.Value) >= x.cfg.ContractMinDigits {
			ex.Entities.Set(types.AttrContractNumber, t.Value, types.SourceUserInput)
			ex.claim(i)
			return true
		}
	}
	return false
}

func (x *Extractor) contractCode(toks token.Tokens, ex *Extraction) bool {
	for i, t := range toks {
		if t.Is(token.Code) && !ex.claimed(i) && IsContractCode(t.Value) {
			ex.Entities.Set(types.AttrContractNumber, strings.ToUpper(t.Value), types.SourceUserInput)
			ex.claim(i)
			return true
		}
	}
	return false
}

// skip returns the first index at or after i whose token is none of cats
func skip(toks token.Tokens, i int, cats ...token.Category) int {
	for i < len(toks) && toks[i].Is(cats...) {
		i++
	}
	return i
}

// skipBack returns the last index at or before i whose token is none of cats
func skipBack(toks token.Tokens, i int, cats ...token.Category) int {
	for i >= 0 && toks[i].Is(cats...) {
		i--
	}
	return i
}
