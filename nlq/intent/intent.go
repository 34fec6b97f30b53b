// Package intent names the purpose of a query and routes it to a domain.
package intent

import (
	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// Classifier maps tokens and extracted entities to an intent with a
// top-down rule table. It is safe for concurrent use.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New creates a classifier; a nil lex uses lexicon.Default()
func New(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Classifier{lex: lex}
}

// Classify returns the first matching intent:
//
//	help or creation wording without identifiers -> HELP_* / STEPS_*
//	part keyword with a contract                 -> PARTS_WITH_CONTRACT
//	part keyword alone                           -> PARTS_ANALYSIS / PARTS_LOOKUP
//	contract keyword                             -> CONTRACTS_* by extracted entity
//	anything else                                -> entity priority, then GENERAL_QUERY
func (c *Classifier) Classify(toks token.Tokens, e *types.Entities) types.Intent {
	hasPart := toks.Has(token.Part)
	hasContract := toks.Has(token.Contract)

	if in, ok := c.help(toks, e, hasPart); ok {
		return in
	}

	if hasPart {
		switch {
		case e.Has(types.AttrContractNumber) || hasContract:
			return types.IntentPartsWithContract
		case toks.Has(token.Failure):
			return types.IntentPartsAnalysis
		default:
			return types.IntentPartsLookup
		}
	}

	if in, ok := byEntity(e); ok {
		return in
	}
	switch {
	case hasContract:
		return types.IntentContractsGeneral
	case e.Has(types.AttrPartNumber):
		return types.IntentPartsLookup
	}
	return types.IntentGeneralQuery
}

// help detects guidance requests. A query naming a contract, customer or
// part number is a lookup even when it says "help", and so is a help word
// next to a contract keyword unless the query asks to create one.
func (c *Classifier) help(toks token.Tokens, e *types.Entities, hasPart bool) (types.Intent, bool) {
	if hasPart || e.HasAny(types.AttrContractNumber, types.AttrCustomerNumber, types.AttrPartNumber) {
		return "", false
	}
	helpWord := toks.Has(token.Help)
	create := c.hasCreateVerb(toks)
	hasContract := toks.Has(token.Contract)
	if create {
		if !helpWord && !hasContract {
			return "", false
		}
	} else if !helpWord || hasContract {
		return "", false
	}

	switch {
	case create && toks.Has(token.Steps):
		return types.IntentStepsCreateContract, true
	case create && (helpWord || toks.Has(token.Question)):
		return types.IntentHelpCreateContract, true
	case create:
		return types.IntentHelpCreateContractBot, true
	default:
		return types.IntentHelpGeneral, true
	}
}

// hasCreateVerb also accepts "draft" used as a verb ("draft a contract"),
// which the tagger files under status values
func (c *Classifier) hasCreateVerb(toks token.Tokens) bool {
	for i, t := range toks {
		if t.Is(token.Create) {
			return true
		}
		if c.lex.Is(t.Value, lexicon.ClassCreate) {
			switch toks.At(i + 1).Value {
			case "a", "an", "new", "the":
				return true
			}
		}
	}
	return false
}

// byEntity applies the contract entity priority: number, customer,
// creator, dates
func byEntity(e *types.Entities) (types.Intent, bool) {
	switch {
	case e.Has(types.AttrContractNumber):
		return types.IntentContractsByNumber, true
	case e.HasAny(types.AttrCustomerNumber, types.AttrCustomerName):
		return types.IntentContractsByCustomer, true
	case e.Has(types.AttrCreatedBy):
		return types.IntentContractsByUser, true
	case e.HasTemporal():
		return types.IntentContractsByDates, true
	}
	return "", false
}
