// Package commands holds the contractq cobra commands.
package commands

import (
	"context"

	"github.com/teranos/contractq/am"
	"github.com/teranos/contractq/cache"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/journal"
	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/metrics"
	"github.com/teranos/contractq/nlq"
	"github.com/teranos/contractq/nlq/types"
)

// InitLogging initializes the global logger from log.* settings. A -v
// count overrides log.level.
func InitLogging(verbosity int) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	level := cfg.Log.Level
	if verbosity > 0 {
		level = logger.VerbosityToLevel(verbosity).String()
	}
	if err := logger.Initialize(cfg.Log.JSON, level); err != nil {
		return errors.Wrap(err, "initialize logger")
	}
	return nil
}

// loadConfig returns the validated configuration
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return cfg, nil
}

// pipeline is a classifier with the optional parts built from am
type pipeline struct {
	classifier *nlq.Classifier
	metrics    *metrics.Metrics
	cache      *cache.Cache[types.Result]
	journal    *journal.Journal
}

// newPipeline builds the classifier described by cfg. useCache is false for
// one-shot commands that asked for --no-cache.
func newPipeline(cfg *am.Config, useCache bool) (*pipeline, error) {
	p := &pipeline{metrics: metrics.New()}
	opts := []nlq.Option{
		nlq.WithConfig(nlq.ConfigFrom(cfg.Classifier)),
		nlq.WithLogger(logger.ComponentLogger("nlq")),
		nlq.WithMetrics(p.metrics),
	}

	if path := cfg.Classifier.LexiconPath; path != "" {
		lex, err := lexicon.LoadExtension(path)
		if err != nil {
			return nil, errors.WithHint(err, "fix or unset classifier.lexicon_path")
		}
		logger.ComponentLogger("lexicon").Infow("Loaded lexicon extension", logger.FieldFile, path, logger.FieldCount, lex.Stats())
		opts = append(opts, nlq.WithLexicon(lex))
	}

	if useCache && cfg.Cache.Enabled {
		p.cache = cache.New[types.Result](cache.Options{
			TTL:        cfg.Cache.TTL,
			Capacity:   cfg.Cache.Capacity,
			EvictBatch: cfg.Cache.EvictBatch,
			Observer:   p.metrics,
		})
		opts = append(opts, nlq.WithCache(p.cache))
	}

	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path, logger.ComponentLogger("journal"))
		if err != nil {
			return nil, err
		}
		p.journal = j
	}

	p.classifier = nlq.New(opts...)
	return p, nil
}

// startJanitor sweeps the cache until ctx is done when cache.sweep_interval
// is set
func (p *pipeline) startJanitor(ctx context.Context, cfg *am.Config) {
	if p.cache == nil || cfg.Cache.SweepInterval <= 0 {
		return
	}
	p.cache.StartJanitor(ctx, cfg.Cache.SweepInterval)
}

// record appends results to the journal, warning on failure
func (p *pipeline) record(ctx context.Context, results ...types.Result) {
	if p.journal == nil {
		return
	}
	for _, r := range results {
		if _, err := p.journal.Record(ctx, r); err != nil {
			logger.Warnw("Journal write failed", logger.FieldError, err)
		}
	}
}

func (p *pipeline) Close() error {
	if p.journal == nil {
		return nil
	}
	return p.journal.Close()
}

// openJournal opens the journal for the read-only commands
func openJournal() (*journal.Journal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrNotFound, "journal is disabled"),
			"set journal.enabled = true in am.toml or CONTRACTQ_JOURNAL_ENABLED=true",
		)
	}
	return journal.Open(cfg.Journal.Path, logger.ComponentLogger("journal"))
}
