package am

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("classifier.low_confidence_threshold", 0.7)
	v.SetDefault("classifier.spell_correction", true)
	v.SetDefault("classifier.multi_intent", true)
	v.SetDefault("classifier.contract_min_digits", 6)
	v.SetDefault("classifier.customer_min_digits", 4)
	v.SetDefault("classifier.customer_max_digits", 5)
	v.SetDefault("classifier.lexicon_path", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("cache.evict_batch", 100)
	v.SetDefault("cache.sweep_interval", time.Minute)

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{"http://localhost", "http://127.0.0.1"})
	v.SetDefault("server.rate_limit_per_second", 50.0)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("server.max_query_length", 1000)
	v.SetDefault("server.max_batch_size", 100)

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "contractq.db")

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}
