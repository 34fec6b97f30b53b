package am

import "github.com/teranos/contractq/errors"

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	cl := c.Classifier
	if cl.LowConfidenceThreshold < 0 || cl.LowConfidenceThreshold > 1 {
		return errors.NewInvalidConfigError("classifier.low_confidence_threshold", "must be within [0,1], got %v", cl.LowConfidenceThreshold)
	}
	if cl.ContractMinDigits < 1 {
		return errors.NewInvalidConfigError("classifier.contract_min_digits", "must be >= 1, got %d", cl.ContractMinDigits)
	}
	if cl.CustomerMinDigits < 1 || cl.CustomerMaxDigits < cl.CustomerMinDigits {
		return errors.NewInvalidConfigError("classifier.customer_min_digits",
			"customer digit range %d..%d is empty", cl.CustomerMinDigits, cl.CustomerMaxDigits)
	}
	if cl.CustomerMaxDigits >= cl.ContractMinDigits {
		return errors.WithHint(
			errors.NewInvalidConfigError("classifier.customer_max_digits",
				"customer range %d..%d overlaps contract minimum %d", cl.CustomerMinDigits, cl.CustomerMaxDigits, cl.ContractMinDigits),
			"a bare number must map to exactly one of contract or customer",
		)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return errors.NewInvalidConfigError("cache.ttl", "must be > 0 when the cache is enabled, got %s", c.Cache.TTL)
		}
		if c.Cache.Capacity <= 0 {
			return errors.NewInvalidConfigError("cache.capacity", "must be > 0, got %d", c.Cache.Capacity)
		}
		if c.Cache.EvictBatch <= 0 {
			return errors.NewInvalidConfigError("cache.evict_batch", "must be > 0, got %d", c.Cache.EvictBatch)
		}
	}
	if c.Cache.SweepInterval < 0 {
		return errors.NewInvalidConfigError("cache.sweep_interval", "must be >= 0, got %s", c.Cache.SweepInterval)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.WithHint(
			errors.NewInvalidConfigError("server.port", "out of range: %d", c.Server.Port),
			"omit server.port for the default 8787",
		)
	}
	if c.Server.RateLimitPerSecond < 0 {
		return errors.NewInvalidConfigError("server.rate_limit_per_second", "must be >= 0, got %v", c.Server.RateLimitPerSecond)
	}
	if c.Server.RateLimitPerSecond > 0 && c.Server.RateLimitBurst < 1 {
		return errors.NewInvalidConfigError("server.rate_limit_burst", "must be >= 1 when rate limiting, got %d", c.Server.RateLimitBurst)
	}
	if c.Server.MaxQueryLength <= 0 {
		return errors.NewInvalidConfigError("server.max_query_length", "must be > 0, got %d", c.Server.MaxQueryLength)
	}
	if c.Server.MaxBatchSize <= 0 {
		return errors.NewInvalidConfigError("server.max_batch_size", "must be > 0, got %d", c.Server.MaxBatchSize)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.NewInvalidConfigError("journal.path", "cannot be empty when the journal is enabled")
	}
	return nil
}
