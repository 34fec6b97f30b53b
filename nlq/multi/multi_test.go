package multi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/nlq/extract"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

func newHandler() *Handler {
	return New(nil, extract.New(nil, extract.DefaultConfig()))
}

func tokenize(s string) token.Tokens {
	return token.NewTagger(nil).Tokenize(s)
}

func TestDetect(t *testing.T) {
	h := newHandler()
	plan, ok := h.Detect(types.Clause{Text: "q"}, tokenize("show contract details and failed parts for 123456"))
	require.True(t, ok)

	assert.Equal(t, "and", plan.Conjunction)
	assert.Equal(t, []lexicon.Signal{lexicon.SignalContract, lexicon.SignalFailure, lexicon.SignalParts}, plan.Signals)
	assert.Equal(t, "123456", plan.Shared)
	assert.Equal(t, []types.Clause{
		{Text: "show contract details for 123456", Depth: 1},
		{Text: "failed parts for 123456", Depth: 1},
	}, plan.Clauses)
}

func TestDetectRejects(t *testing.T) {
	h := newHandler()
	tests := []struct {
		name   string
		input  string
		clause types.Clause
	}{
		{"no conjunction", "show contract 123456 failed parts", types.Clause{}},
		{"single domain", "show contract 123456 and contract 654321", types.Clause{}},
		{"conjunction first", "and contract parts", types.Clause{}},
		{"conjunction last", "contract parts and", types.Clause{}},
		{"already split", "contract details and failed parts", types.Clause{Depth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := h.Detect(tt.clause, tokenize(tt.input))
			assert.False(t, ok)
		})
	}
}

func TestDetectKeepsClauseNumbers(t *testing.T) {
	plan, ok := newHandler().Detect(types.Clause{}, tokenize("contract 123456 status and parts for contract 654321"))
	require.True(t, ok)
	assert.Equal(t, "contract 123456 status", plan.Clauses[0].Text)
	assert.Equal(t, "parts for contract 654321", plan.Clauses[1].Text)
}

func clauseResult(domain types.Domain, field, value string, conf float64, display ...string) types.Result {
	return types.Result{
		Header: types.Header{ContractNumber: util.Ptr(value)},
		QueryMetadata: types.QueryMetadata{
			QueryType:  domain,
			Intent:     types.IntentContractsByNumber,
			ActionType: types.ActionContractsByContractNumber,
		},
		Entities:        []types.EntityFilter{{Attribute: field, Operation: "=", Value: value, Source: types.SourceUserInput}},
		DisplayEntities: display,
		Errors:          []types.ErrorEntry{},
		Confidence:      conf,
	}
}

func TestMerge(t *testing.T) {
	a := clauseResult(types.DomainContracts, types.FieldAwardNumber, "123456", 0.95, "CONTRACT_NUMBER", "STATUS")
	b := clauseResult(types.DomainParts, types.FieldLoadedCPNumber, "123456", 0.81, "PART_NUMBER", "STATUS", "REASON")
	b.Errors = []types.ErrorEntry{{Code: types.CodeLowConfidence, Severity: types.SeverityWarning}}

	got := Merge([]types.Result{a, b}, []types.Clause{{Text: "a", Depth: 1}, {Text: "b", Depth: 1}})

	assert.Equal(t, types.DomainMultiIntent, got.Domain())
	assert.Equal(t, types.IntentMultiIntent, got.Intent())
	assert.Equal(t, types.ActionContractsByFilter, got.Action())
	assert.Equal(t, []types.EntityFilter{
		{Attribute: types.FieldAwardNumber, Operation: "=", Value: "123456", Source: types.SourceUserInput},
	}, got.Entities)
	assert.Equal(t, []string{"CONTRACT_NUMBER", "STATUS", "PART_NUMBER", "REASON"}, got.DisplayEntities)
	assert.InDelta(t, 0.88, got.Confidence, 0.001)
	assert.Empty(t, got.Errors)
	require.NotNil(t, got.Header.ContractNumber)
	assert.Equal(t, "123456", *got.Header.ContractNumber)
	require.Len(t, got.QueryMetadata.Clauses, 2)
	assert.Equal(t, "b", got.QueryMetadata.Clauses[1].Text)
	assert.Equal(t, types.DomainParts, got.QueryMetadata.Clauses[1].QueryType)
}

func TestMergeKeepsDistinctContracts(t *testing.T) {
	a := clauseResult(types.DomainContracts, types.FieldAwardNumber, "123456", 0.9)
	b := clauseResult(types.DomainParts, types.FieldLoadedCPNumber, "654321", 0.9)
	got := Merge([]types.Result{a, b}, nil)
	require.Len(t, got.Entities, 2)
	for _, f := range got.Entities {
		assert.Equal(t, types.FieldAwardNumber, f.Attribute)
	}
}

func TestHandle(t *testing.T) {
	h := newHandler()
	var seen []types.Clause
	classify := func(c types.Clause) types.Result {
		seen = append(seen, c)
		return clauseResult(types.DomainContracts, types.FieldAwardNumber, "123456", 0.9, "CONTRACT_NUMBER")
	}

	got, plan, ok := h.Handle(types.Clause{}, tokenize("show contract details and failed parts for 123456"), classify)
	require.True(t, ok)
	require.NotNil(t, plan)
	assert.Len(t, seen, 2)
	for _, c := range seen {
		assert.False(t, c.Splittable())
	}
	assert.Equal(t, types.DomainMultiIntent, got.Domain())
	assert.Len(t, got.Entities, 1)
}

func TestHandleFallsBackWhenAClauseFails(t *testing.T) {
	h := newHandler()
	n := 0
	classify := func(c types.Clause) types.Result {
		n++
		if n == 2 {
			return types.Result{Errors: []types.ErrorEntry{{Code: types.CodeProcessingError, Severity: types.SeverityBlocker}}}
		}
		return clauseResult(types.DomainContracts, types.FieldAwardNumber, "123456", 0.9)
	}

	_, plan, ok := h.Handle(types.Clause{}, tokenize("show contract details and failed parts for 123456"), classify)
	assert.False(t, ok)
	assert.NotNil(t, plan)
}
