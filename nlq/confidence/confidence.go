// Package confidence scores how sure the classifier is of a result.
package confidence

import (
	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/types"
)

const (
	base              = 0.7
	perEntity         = 0.1
	correctionBonus   = 0.05
	domainEntityBonus = 0.15

	shortQueryChars        = 10
	shortQueryPenalty      = 0.1
	heavyCorrectionTokens  = 3
	heavyCorrectionPenalty = 0.1

	// Min and Max bound every successful score; the error path scores 0
	Min = 0.5
	Max = 0.98
)

// Input carries the signals the score is computed from
type Input struct {
	Domain               types.Domain
	Entities             *types.Entities
	CorrectionConfidence float64
	CorrectedTokens      int
	NormalizedLength     int
}

// Breakdown itemizes a score for diagnostics
type Breakdown struct {
	Base            float64 `json:"base"`
	Entities        float64 `json:"entities"`
	Correction      float64 `json:"correction"`
	DomainEntity    float64 `json:"domainEntity"`
	ShortQuery      float64 `json:"shortQuery"`
	HeavyCorrection float64 `json:"heavyCorrection"`
	Raw             float64 `json:"raw"`
	Score           float64 `json:"score"`
}

// Score returns the clamped confidence for in
func Score(in Input) float64 {
	return Explain(in).Score
}

// Explain computes the score and each contribution to it
func Explain(in Input) Breakdown {
	b := Breakdown{Base: base}
	if in.Entities != nil {
		b.Entities = perEntity * float64(in.Entities.Count())
	}
	if in.CorrectionConfidence > 0 {
		b.Correction = correctionBonus
	}
	if hasDomainEntity(in.Domain, in.Entities) {
		b.DomainEntity = domainEntityBonus
	}
	if in.NormalizedLength < shortQueryChars {
		b.ShortQuery = -shortQueryPenalty
	}
	if in.CorrectedTokens > heavyCorrectionTokens {
		b.HeavyCorrection = -heavyCorrectionPenalty
	}

	b.Raw = b.Base + b.Entities + b.Correction + b.DomainEntity + b.ShortQuery + b.HeavyCorrection
	b.Score = util.Round2(util.Clamp(b.Raw, Min, Max))
	return b
}

func hasDomainEntity(d types.Domain, e *types.Entities) bool {
	if e == nil {
		return false
	}
	switch d {
	case types.DomainContracts:
		return e.Has(types.AttrContractNumber)
	case types.DomainParts:
		return e.Has(types.AttrPartNumber)
	}
	return false
}

// Level returns a human-readable confidence level
func Level(c float64) string {
	switch {
	case c >= 0.9:
		return "high"
	case c >= 0.7:
		return "medium"
	case c > 0:
		return "low"
	default:
		return "none"
	}
}
