package multi

import (
	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/types"
)

// Merge combines clause results into one MULTI_INTENT result. Display
// fields and filters are unioned in order of first appearance, and every
// contract number filter collapses into a single AWARD_NUMBER filter per
// value. LOW_CONFIDENCE warnings are dropped so the caller can recompute
// them for the merged confidence.
func Merge(results []types.Result, clauses []types.Clause) types.Result {
	out := types.Result{
		QueryMetadata: types.QueryMetadata{
			QueryType:  types.DomainMultiIntent,
			Intent:     types.IntentMultiIntent,
			ActionType: types.ActionContractsByFilter,
		},
		Entities:        []types.EntityFilter{},
		DisplayEntities: []string{},
		Errors:          []types.ErrorEntry{},
	}

	type filterKey struct{ attr, op, value string }
	seenFilter := make(map[filterKey]bool)
	seenError := make(map[types.ErrorEntry]bool)
	confidences := make([]float64, 0, len(results))

	for i, r := range results {
		mergeHeader(&out.Header, r.Header)

		for _, f := range r.Entities {
			if types.IsContractNumberField(f.Attribute) {
				f.Attribute = types.FieldAwardNumber
			}
			k := filterKey{f.Attribute, f.Operation, f.Value}
			if seenFilter[k] {
				continue
			}
			seenFilter[k] = true
			out.Entities = append(out.Entities, f)
		}

		out.DisplayEntities = util.AppendUnique(out.DisplayEntities, r.DisplayEntities...)

		for _, e := range r.Errors {
			if e.Code == types.CodeLowConfidence || seenError[e] {
				continue
			}
			seenError[e] = true
			out.Errors = append(out.Errors, e)
		}

		confidences = append(confidences, r.Confidence)

		summary := types.ClauseSummary{
			QueryType:  r.Domain(),
			Intent:     r.Intent(),
			ActionType: r.Action(),
			Confidence: r.Confidence,
		}
		if i < len(clauses) {
			summary.Text = clauses[i].Text
		}
		out.QueryMetadata.Clauses = append(out.QueryMetadata.Clauses, summary)
	}

	out.Confidence = util.Round2(util.Mean(confidences))
	return out
}

func mergeHeader(dst *types.Header, src types.Header) {
	first := func(d **string, s *string) {
		if *d == nil && s != nil {
			v := *s
			*d = &v
		}
	}
	first(&dst.ContractNumber, src.ContractNumber)
	first(&dst.PartNumber, src.PartNumber)
	first(&dst.CustomerNumber, src.CustomerNumber)
	first(&dst.CustomerName, src.CustomerName)
	first(&dst.CreatedBy, src.CreatedBy)
}
