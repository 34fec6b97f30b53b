package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "contractq"

var (
	queriesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "classifier", "queries_total"),
		"Classified queries by result domain", []string{"domain"}, nil)
	errorsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "classifier", "errors_total"),
		"Classifications that ended in a blocking error", nil, nil)
	confidenceDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "classifier", "confidence_total"),
		"Classifications by confidence band", []string{"band"}, nil)
	meanConfidenceDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "classifier", "mean_confidence"),
		"Mean confidence of successful classifications", nil, nil)
	meanLatencyDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "classifier", "mean_processing_seconds"),
		"Mean classification time", nil, nil)
	cacheDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cache", "events_total"),
		"Result cache events", []string{"event"}, nil)
)

// Collector exposes a Metrics value to Prometheus. Values are read at
// scrape time, so no counter is duplicated.
type Collector struct {
	m *Metrics
}

// NewCollector wraps m
func NewCollector(m *Metrics) *Collector {
	return &Collector{m: m}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		queriesDesc, errorsDesc, confidenceDesc, meanConfidenceDesc, meanLatencyDesc, cacheDesc,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Snapshot()

	for d, n := range s.ByDomain {
		ch <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(n), string(d))
	}
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(s.Errors))
	ch <- prometheus.MustNewConstMetric(confidenceDesc, prometheus.CounterValue, float64(s.LowConfidence), "low")
	ch <- prometheus.MustNewConstMetric(confidenceDesc, prometheus.CounterValue, float64(s.HighConfidence), "high")
	ch <- prometheus.MustNewConstMetric(meanConfidenceDesc, prometheus.GaugeValue, s.MeanConfidence)
	ch <- prometheus.MustNewConstMetric(meanLatencyDesc, prometheus.GaugeValue, s.MeanProcessingMs/1000)

	for event, n := range map[string]int64{
		"hit":        s.CacheHits,
		"miss":       s.CacheMisses,
		"eviction":   s.CacheEvictions,
		"expiration": s.CacheExpirations,
	} {
		ch <- prometheus.MustNewConstMetric(cacheDesc, prometheus.CounterValue, float64(n), event)
	}
}
