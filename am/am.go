// Package am holds contractq configuration: defaults, TOML files and
// CONTRACTQ_* environment overrides merged by viper.
package am

import "time"

// Config is the complete contractq configuration
type Config struct {
	Classifier ClassifierConfig `mapstructure:"classifier" toml:"classifier" yaml:"classifier" json:"classifier"`
	Cache      CacheConfig      `mapstructure:"cache" toml:"cache" yaml:"cache" json:"cache"`
	Server     ServerConfig     `mapstructure:"server" toml:"server" yaml:"server" json:"server"`
	Journal    JournalConfig    `mapstructure:"journal" toml:"journal" yaml:"journal" json:"journal"`
	Log        LogConfig        `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// ClassifierConfig tunes the rule pipeline
type ClassifierConfig struct {
	LowConfidenceThreshold float64 `mapstructure:"low_confidence_threshold" toml:"low_confidence_threshold" yaml:"low_confidence_threshold" json:"low_confidence_threshold"`
	SpellCorrection        bool    `mapstructure:"spell_correction" toml:"spell_correction" yaml:"spell_correction" json:"spell_correction"`
	MultiIntent            bool    `mapstructure:"multi_intent" toml:"multi_intent" yaml:"multi_intent" json:"multi_intent"`

	// Bare numbers with no keyword context: >= ContractMinDigits is a contract
	// number, CustomerMinDigits..CustomerMaxDigits is a customer number.
	ContractMinDigits int `mapstructure:"contract_min_digits" toml:"contract_min_digits" yaml:"contract_min_digits" json:"contract_min_digits"`
	CustomerMinDigits int `mapstructure:"customer_min_digits" toml:"customer_min_digits" yaml:"customer_min_digits" json:"customer_min_digits"`
	CustomerMaxDigits int `mapstructure:"customer_max_digits" toml:"customer_max_digits" yaml:"customer_max_digits" json:"customer_max_digits"`

	LexiconPath string `mapstructure:"lexicon_path" toml:"lexicon_path" yaml:"lexicon_path" json:"lexicon_path"` // optional TOML extension
}

// CacheConfig configures the result cache
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	TTL           time.Duration `mapstructure:"ttl" toml:"ttl" yaml:"ttl" json:"ttl"`
	Capacity      int           `mapstructure:"capacity" toml:"capacity" yaml:"capacity" json:"capacity"`
	EvictBatch    int           `mapstructure:"evict_batch" toml:"evict_batch" yaml:"evict_batch" json:"evict_batch"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" toml:"sweep_interval" yaml:"sweep_interval" json:"sweep_interval"` // 0 disables the janitor
}

// ServerConfig configures the HTTP front door
type ServerConfig struct {
	Port               int      `mapstructure:"port" toml:"port" yaml:"port" json:"port"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" toml:"allowed_origins" yaml:"allowed_origins" json:"allowed_origins"`
	RateLimitPerSecond float64  `mapstructure:"rate_limit_per_second" toml:"rate_limit_per_second" yaml:"rate_limit_per_second" json:"rate_limit_per_second"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst" toml:"rate_limit_burst" yaml:"rate_limit_burst" json:"rate_limit_burst"`
	MaxQueryLength     int      `mapstructure:"max_query_length" toml:"max_query_length" yaml:"max_query_length" json:"max_query_length"`
	MaxBatchSize       int      `mapstructure:"max_batch_size" toml:"max_batch_size" yaml:"max_batch_size" json:"max_batch_size"`
}

// JournalConfig configures the SQLite classification journal
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Level string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
}

// DefaultServerPort is used when server.port is unset
const DefaultServerPort = 8787

// DefaultDirPermissions for ~/.contractq
const DefaultDirPermissions = 0o755
