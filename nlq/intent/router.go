package intent

import (
	"strings"

	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// Keyword weights for routing inconclusive intents
const (
	weightContract = 3
	weightCustomer = 2
	weightCreator  = 2
	weightPart     = 2
	weightHelp     = 1
	weightQuestion = 1
)

// routeOrder breaks score ties
var routeOrder = []types.Domain{types.DomainContracts, types.DomainParts, types.DomainHelp}

// Routing is the domain chosen for an intent
type Routing struct {
	Domain types.Domain `json:"domain"`
	// ByKeyword is set when the intent was inconclusive and keyword
	// scores decided
	ByKeyword bool                 `json:"byKeyword"`
	Scores    map[types.Domain]int `json:"scores,omitempty"`
}

// Route maps an intent to its domain, scoring keywords when the intent
// does not name one
func Route(in types.Intent, toks token.Tokens) Routing {
	if d, ok := domainOf(in); ok {
		return Routing{Domain: d}
	}

	scores := Scores(toks)
	best := types.DomainContracts
	for _, d := range routeOrder {
		if scores[d] > scores[best] {
			best = d
		}
	}
	return Routing{Domain: best, ByKeyword: true, Scores: scores}
}

// Scores weighs keyword presence per domain
func Scores(toks token.Tokens) map[types.Domain]int {
	scores := make(map[types.Domain]int, len(routeOrder))
	add := func(d types.Domain, w int, cats ...token.Category) {
		if toks.Has(cats...) {
			scores[d] += w
		}
	}
	add(types.DomainContracts, weightContract, token.Contract)
	add(types.DomainContracts, weightCustomer, token.Customer)
	add(types.DomainContracts, weightCreator, token.Creator)
	add(types.DomainParts, weightPart, token.Part)
	add(types.DomainHelp, weightHelp, token.Help)
	add(types.DomainHelp, weightQuestion, token.Question)
	return scores
}

func domainOf(in types.Intent) (types.Domain, bool) {
	s := string(in)
	switch {
	case strings.HasPrefix(s, "HELP_"), strings.HasPrefix(s, "STEPS_"):
		return types.DomainHelp, true
	case strings.HasPrefix(s, "PARTS_"):
		return types.DomainParts, true
	case strings.HasPrefix(s, "CONTRACTS_"):
		return types.DomainContracts, true
	}
	return "", false
}
