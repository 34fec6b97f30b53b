package nlq

import (
	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/action"
	"github.com/teranos/contractq/nlq/confidence"
	"github.com/teranos/contractq/nlq/display"
	"github.com/teranos/contractq/nlq/extract"
	"github.com/teranos/contractq/nlq/intent"
	"github.com/teranos/contractq/nlq/spell"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// ClauseTrace is the intermediate output of each stage for one clause
type ClauseTrace struct {
	Text            string               `json:"text" yaml:"text"`
	Depth           int                  `json:"depth" yaml:"depth"`
	Tokens          token.Tokens         `json:"tokens" yaml:"tokens"`
	Context         extract.Rule         `json:"context" yaml:"context"`
	CustomerContext bool                 `json:"customerContext" yaml:"customerContext"`
	Entities        []types.Entity       `json:"entities" yaml:"entities"`
	Requested       []string             `json:"requestedFields,omitempty" yaml:"requestedFields,omitempty"`
	Intent          types.Intent         `json:"intent" yaml:"intent"`
	Routing         intent.Routing       `json:"routing" yaml:"routing"`
	Repairs         []types.Attr         `json:"repairs,omitempty" yaml:"repairs,omitempty"`
	Action          string               `json:"action" yaml:"action"`
	Confidence      confidence.Breakdown `json:"confidence" yaml:"confidence"`
}

// runClause is the single-clause pipeline. raw is the text identifiers
// are repaired from: the original query at the top level, the clause text
// for split clauses.
func (c *Classifier) runClause(cl types.Clause, raw string, toks token.Tokens, corr spell.Correction) (types.Result, ClauseTrace) {
	ex := c.extractor.Extract(toks)
	e := &ex.Entities

	in := c.intents.Classify(toks, e)
	routing := intent.Route(in, toks)
	domain := routing.Domain
	repairs := display.Repair(domain, raw, e, ex.CustomerContext)

	merged := cl.Depth > 0
	act := action.Resolve(domain, in, e, merged)

	breakdown := confidence.Explain(confidence.Input{
		Domain:               domain,
		Entities:             e,
		CorrectionConfidence: corr.Confidence,
		CorrectedTokens:      corr.Corrected(),
		NormalizedLength:     len(corr.Input),
	})

	requested := e.RequestedFields()
	fields := display.Fields(domain, requested)
	if domain != types.DomainHelp {
		fields = display.Ensure(fields, requested)
	}

	r := types.Result{
		Header: header(e, tracking(corr.Input, corr)),
		QueryMetadata: types.QueryMetadata{
			QueryType:  domain,
			Intent:     in,
			ActionType: act,
		},
		Entities:        display.Filters(domain, e, toks.Has(token.Failure)),
		DisplayEntities: fields,
		Errors:          display.Warnings(domain, e),
		Confidence:      breakdown.Score,
	}
	r.Header.InputTracking.OriginalInput = raw
	if merged {
		r.Header.InputTracking.OriginalInput = cl.Text
	}
	if r.Errors == nil {
		r.Errors = []types.ErrorEntry{}
	}
	c.flagLowConfidence(&r)

	trace := ClauseTrace{
		Text:            cl.Text,
		Depth:           cl.Depth,
		Tokens:          toks,
		Context:         ex.Context,
		CustomerContext: ex.CustomerContext,
		Entities:        e.All(),
		Requested:       requested,
		Intent:          in,
		Routing:         routing,
		Repairs:         repairs,
		Action:          act,
		Confidence:      breakdown,
	}
	return r, trace
}

func header(e *types.Entities, t types.InputTracking) types.Header {
	get := func(a types.Attr) *string {
		if v := e.Get(a); v != "" {
			return util.Ptr(v)
		}
		return nil
	}
	return types.Header{
		ContractNumber: get(types.AttrContractNumber),
		PartNumber:     get(types.AttrPartNumber),
		CustomerNumber: get(types.AttrCustomerNumber),
		CustomerName:   get(types.AttrCustomerName),
		CreatedBy:      get(types.AttrCreatedBy),
		InputTracking:  t,
	}
}
