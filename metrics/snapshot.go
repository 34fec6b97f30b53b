package metrics

import (
	"time"

	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/types"
)

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	TotalQueries     int64                  `json:"totalQueries" yaml:"totalQueries"`
	ByDomain         map[types.Domain]int64 `json:"byDomain" yaml:"byDomain"`
	Errors           int64                  `json:"errors" yaml:"errors"`
	LowConfidence    int64                  `json:"lowConfidence" yaml:"lowConfidence"`
	HighConfidence   int64                  `json:"highConfidence" yaml:"highConfidence"`
	CacheHits        int64                  `json:"cacheHits" yaml:"cacheHits"`
	CacheMisses      int64                  `json:"cacheMisses" yaml:"cacheMisses"`
	CacheHitRate     float64                `json:"cacheHitRate" yaml:"cacheHitRate"`
	CacheEvictions   int64                  `json:"cacheEvictions" yaml:"cacheEvictions"`
	CacheExpirations int64                  `json:"cacheExpirations" yaml:"cacheExpirations"`
	MeanConfidence   float64                `json:"meanConfidence" yaml:"meanConfidence"`
	MeanProcessingMs float64                `json:"meanProcessingMs" yaml:"meanProcessingMs"`
}

// Snapshot reads every counter. Counters are read one by one, so a
// snapshot taken under load may mix values from concurrent updates.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		TotalQueries:     m.total.Load(),
		ByDomain:         make(map[types.Domain]int64, len(m.byDomain)),
		Errors:           m.errors.Load(),
		LowConfidence:    m.lowConfidence.Load(),
		HighConfidence:   m.highConfidence.Load(),
		CacheHits:        m.cacheHits.Load(),
		CacheMisses:      m.cacheMisses.Load(),
		CacheEvictions:   m.evictions.Load(),
		CacheExpirations: m.expirations.Load(),
	}
	for d, c := range m.byDomain {
		s.ByDomain[d] = c.Load()
	}
	if lookups := s.CacheHits + s.CacheMisses; lookups > 0 {
		s.CacheHitRate = util.Round2(float64(s.CacheHits) / float64(lookups))
	}
	if ok := s.TotalQueries - s.Errors; ok > 0 {
		s.MeanConfidence = util.Round2(m.confidenceTotal() / float64(ok))
	}
	if s.TotalQueries > 0 {
		mean := time.Duration(m.durationSum.Load() / s.TotalQueries)
		s.MeanProcessingMs = util.Round2(float64(mean) / float64(time.Millisecond))
	}
	return s
}
