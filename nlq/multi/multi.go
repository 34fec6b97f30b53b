// Package multi splits queries that span several domains into clauses,
// classifies each clause on its own and merges the results.
package multi

import (
	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/nlq/extract"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

const (
	// minSignals is how many domain families a query must touch to be split
	minSignals = 2
	minClauses = 2
)

// ClauseClassifier runs the single-clause pipeline over one clause
type ClauseClassifier func(types.Clause) types.Result

// Plan describes how a query is split
type Plan struct {
	Conjunction string           `json:"conjunction"`
	Signals     []lexicon.Signal `json:"signals"`
	// Shared is the contract number found in the whole query and injected
	// into clauses that carry no number of their own
	Shared  string         `json:"shared,omitempty"`
	Clauses []types.Clause `json:"clauses"`
}

// Handler detects and splits multi-intent queries. It is safe for
// concurrent use.
type Handler struct {
	lex       *lexicon.Lexicon
	extractor *extract.Extractor
}

// New creates a handler; a nil lex uses lexicon.Default()
func New(lex *lexicon.Lexicon, extractor *extract.Extractor) *Handler {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Handler{lex: lex, extractor: extractor}
}

// Signals returns the distinct domain families toks touch, in order of
// first appearance
func (h *Handler) Signals(toks token.Tokens) []lexicon.Signal {
	var out []lexicon.Signal
	seen := make(map[lexicon.Signal]bool)
	for _, t := range toks {
		for _, s := range h.lex.Signals(t.Value) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Detect decides whether clause should be split. Only a clause at the top
// level is ever split; the clauses it produces are not.
func (h *Handler) Detect(clause types.Clause, toks token.Tokens) (*Plan, bool) {
	if !clause.Splittable() {
		return nil, false
	}
	at := toks.Index(0, token.Conjunction)
	if at < 0 {
		return nil, false
	}
	signals := h.Signals(toks)
	if len(signals) < minSignals {
		return nil, false
	}

	left, right := toks[:at], toks[at+1:]
	if len(left) == 0 || len(right) == 0 {
		return nil, false
	}

	plan := &Plan{Conjunction: toks[at].Value, Signals: signals}
	if h.extractor != nil {
		plan.Shared = h.extractor.Extract(toks).Entities.Get(types.AttrContractNumber)
	}
	for _, part := range []token.Tokens{left, right} {
		text := part.Text()
		if plan.Shared != "" && !part.Has(token.Number, token.Code) {
			text += " for " + plan.Shared
		}
		plan.Clauses = append(plan.Clauses, types.Clause{Text: text, Depth: clause.Depth + 1})
	}
	return plan, true
}

// Handle splits and classifies clause. It reports false when the query is
// not multi-intent or fewer than two clauses produced a result, in which
// case the caller classifies it as a single clause.
func (h *Handler) Handle(clause types.Clause, toks token.Tokens, classify ClauseClassifier) (types.Result, *Plan, bool) {
	plan, ok := h.Detect(clause, toks)
	if !ok {
		return types.Result{}, nil, false
	}

	results := make([]types.Result, 0, len(plan.Clauses))
	kept := make([]types.Clause, 0, len(plan.Clauses))
	for _, c := range plan.Clauses {
		r := classify(c)
		if r.HasBlocker() {
			continue
		}
		results = append(results, r)
		kept = append(kept, c)
	}
	if len(results) < minClauses {
		return types.Result{}, plan, false
	}
	return Merge(results, kept), plan, true
}
