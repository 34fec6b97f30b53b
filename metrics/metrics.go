// Package metrics counts classifications. A Metrics value is created by the
// caller and handed to the classifier and cache; there is no package-level
// state, so tests can observe an isolated instance.
package metrics

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/teranos/contractq/nlq/types"
)

// HighConfidence is the score at or above which a result counts as high
// confidence
const HighConfidence = 0.9

// domains are the result domains with their own counter
var domains = []types.Domain{
	types.DomainContracts, types.DomainParts, types.DomainHelp,
	types.DomainMultiIntent, types.DomainError,
}

// Metrics holds atomic counters. The zero value is not usable; use New.
type Metrics struct {
	total          atomic.Int64
	errors         atomic.Int64
	lowConfidence  atomic.Int64
	highConfidence atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	evictions      atomic.Int64
	expirations    atomic.Int64

	// float sums are kept as IEEE bits and updated with CAS
	confidenceSum atomic.Uint64
	durationSum   atomic.Int64 // nanoseconds

	byDomain map[types.Domain]*atomic.Int64
}

// New creates a zeroed Metrics
func New() *Metrics {
	m := &Metrics{byDomain: make(map[types.Domain]*atomic.Int64, len(domains))}
	for _, d := range domains {
		m.byDomain[d] = new(atomic.Int64)
	}
	return m
}

// RecordClassification counts one finished classification. lowThreshold is
// the score below which a result counts as low confidence.
func (m *Metrics) RecordClassification(r *types.Result, elapsed time.Duration, lowThreshold float64) {
	m.total.Add(1)
	if c, ok := m.byDomain[r.Domain()]; ok {
		c.Add(1)
	}
	m.durationSum.Add(int64(elapsed))

	if r.HasBlocker() {
		m.errors.Add(1)
		return
	}
	addFloat(&m.confidenceSum, r.Confidence)
	switch {
	case r.Confidence < lowThreshold:
		m.lowConfidence.Add(1)
	case r.Confidence >= HighConfidence:
		m.highConfidence.Add(1)
	}
}

// CacheHit counts a cache hit
func (m *Metrics) CacheHit() { m.cacheHits.Add(1) }

// CacheMiss counts a cache miss
func (m *Metrics) CacheMiss() { m.cacheMisses.Add(1) }

// CacheEvicted counts entries dropped to stay under capacity
func (m *Metrics) CacheEvicted(n int) { m.evictions.Add(int64(n)) }

// CacheExpired counts entries dropped after their TTL
func (m *Metrics) CacheExpired(n int) { m.expirations.Add(int64(n)) }

// Reset zeroes every counter
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.total, &m.errors, &m.lowConfidence, &m.highConfidence,
		&m.cacheHits, &m.cacheMisses, &m.evictions, &m.expirations, &m.durationSum,
	} {
		c.Store(0)
	}
	m.confidenceSum.Store(0)
	for _, c := range m.byDomain {
		c.Store(0)
	}
}

func addFloat(u *atomic.Uint64, delta float64) {
	for {
		old := u.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if u.CompareAndSwap(old, next) {
			return
		}
	}
}

func (m *Metrics) confidenceTotal() float64 {
	return math.Float64frombits(m.confidenceSum.Load())
}
