package nlq

import (
	"github.com/teranos/contractq/nlq/multi"
	"github.com/teranos/contractq/nlq/normalize"
	"github.com/teranos/contractq/nlq/spell"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// Diagnosis is a stage-by-stage trace of one classification
type Diagnosis struct {
	Query      string           `json:"query" yaml:"query"`
	Normalized string           `json:"normalized" yaml:"normalized"`
	Correction spell.Correction `json:"correction" yaml:"correction"`
	Tokens     token.Tokens     `json:"tokens" yaml:"tokens"`

	// Plan is set when the query had multi-intent shape, even if the
	// split was abandoned
	Plan    *multi.Plan   `json:"plan,omitempty" yaml:"plan,omitempty"`
	Clauses []ClauseTrace `json:"clauses" yaml:"clauses"`
	Result  types.Result  `json:"result" yaml:"result"`
}

// Diagnose classifies query without touching the cache or metrics and
// returns what every stage produced
func (c *Classifier) Diagnose(query string) *Diagnosis {
	normalized := normalize.Normalize(query)
	if normalized == "" {
		return &Diagnosis{
			Query:  query,
			Result: errorResult(query, types.CodeEmptyInput, "Query is empty."),
		}
	}
	_, diag := c.run(query, normalized)
	return diag
}
