// Package nlq classifies free-text contract, parts and help queries into
// structured results for the execution layer.
//
// A Classifier runs the stages in order:
//
//	normalize -> spell -> token -> [multi] -> extract -> intent -> route
//	          -> repair -> action -> confidence -> display
//
// Classify never returns an error. Blank input and unexpected failures
// come back as ERROR-domain results carrying one BLOCKER entry.
package nlq

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/contractq/am"
	"github.com/teranos/contractq/cache"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/lexicon"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/metrics"
	"github.com/teranos/contractq/nlq/extract"
	"github.com/teranos/contractq/nlq/intent"
	"github.com/teranos/contractq/nlq/multi"
	"github.com/teranos/contractq/nlq/normalize"
	"github.com/teranos/contractq/nlq/spell"
	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

var timeNow = time.Now

// DefaultLowConfidenceThreshold is the score below which LOW_CONFIDENCE is added
const DefaultLowConfidenceThreshold = 0.7

// Config tunes a Classifier
type Config struct {
	LowConfidenceThreshold float64
	SpellCorrection        bool
	MultiIntent            bool
	Extract                extract.Config
}

// DefaultConfig enables every stage with the standard thresholds
func DefaultConfig() Config {
	return Config{
		LowConfidenceThreshold: DefaultLowConfidenceThreshold,
		SpellCorrection:        true,
		MultiIntent:            true,
		Extract:                extract.DefaultConfig(),
	}
}

// ConfigFrom converts the classifier section of the am configuration
func ConfigFrom(c am.ClassifierConfig) Config {
	return Config{
		LowConfidenceThreshold: c.LowConfidenceThreshold,
		SpellCorrection:        c.SpellCorrection,
		MultiIntent:            c.MultiIntent,
		Extract: extract.Config{
			ContractMinDigits: c.ContractMinDigits,
			CustomerMinDigits: c.CustomerMinDigits,
			CustomerMaxDigits: c.CustomerMaxDigits,
		},
	}
}

// Classifier is the query classification pipeline. All stages are
// read-only after New, so one Classifier serves any number of goroutines.
type Classifier struct {
	cfg    Config
	lex    *lexicon.Lexicon
	logger *zap.SugaredLogger

	corrector *spell.Corrector
	tagger    *token.Tagger
	extractor *extract.Extractor
	intents   *intent.Classifier
	multi     *multi.Handler

	cache   *cache.Cache[types.Result]
	metrics *metrics.Metrics
}

// Option configures optional dependencies of a Classifier
type Option func(*Classifier)

// WithConfig replaces DefaultConfig()
func WithConfig(cfg Config) Option {
	return func(c *Classifier) { c.cfg = cfg }
}

// WithLexicon uses lex instead of lexicon.Default()
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(c *Classifier) { c.lex = lex }
}

// WithLogger sets the logger used for per-query debug lines and recovered failures
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithCache enables result caching keyed by normalized query text
func WithCache(rc *cache.Cache[types.Result]) Option {
	return func(c *Classifier) { c.cache = rc }
}

// WithMetrics records every classification in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Classifier) { c.metrics = m }
}

// New builds a classifier. Without options it uses the built-in lexicon,
// no cache and no metrics.
func New(opts ...Option) *Classifier {
	c := &Classifier{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}
	if c.lex == nil {
		c.lex = lexicon.Default()
	}
	if c.logger == nil {
		c.logger = logger.ComponentLogger("nlq")
	}

	c.corrector = spell.New(c.lex)
	c.tagger = token.NewTagger(c.lex)
	c.extractor = extract.New(c.lex, c.cfg.Extract)
	c.intents = intent.New(c.lex)
	c.multi = multi.New(c.lex, c.extractor)
	return c
}

// Metrics returns the metrics the classifier records into, or nil
func (c *Classifier) Metrics() *metrics.Metrics { return c.metrics }

// ClearCache drops every cached result
func (c *Classifier) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Classify interprets query. The result is never partially built: it is
// either a complete classification or an ERROR-domain result.
func (c *Classifier) Classify(query string) (result types.Result) {
	start := timeNow()
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.Wrapf(errors.ErrProcessing, "%v", rec)
			c.logger.Warnw("Classification failed",
				logger.FieldQuery, query,
				logger.FieldError, err,
			)
			result = errorResult(query, types.CodeProcessingError, err.Error())
			c.finish(&result, start)
		}
	}()

	normalized := normalize.Normalize(query)
	if normalized == "" {
		c.logger.Debugw("Rejected empty query", logger.FieldError, errors.ErrEmptyInput)
		result = errorResult(query, types.CodeEmptyInput, "Query is empty. Ask about a contract, a part or how to create a contract.")
		c.finish(&result, start)
		return result
	}

	if c.cache != nil {
		if hit, ok := c.cache.Get(normalized); ok {
			result = hit.Clone()
			result.QueryMetadata.CacheHit = true
			result.Header.InputTracking.OriginalInput = query
			c.finish(&result, start)
			return result
		}
	}

	result, _ = c.run(query, normalized)
	if c.cache != nil && !result.HasBlocker() {
		c.cache.Put(normalized, result.Clone())
	}
	c.finish(&result, start)
	return result
}

// run classifies a non-empty normalized query and returns the trace of
// every stage alongside the result
func (c *Classifier) run(query, normalized string) (types.Result, *Diagnosis) {
	diag := &Diagnosis{Query: query, Normalized: normalized}

	corr := spell.Correction{Input: normalized, Text: normalized}
	if c.cfg.SpellCorrection {
		corr = c.corrector.Correct(normalized)
	}
	diag.Correction = corr

	toks := c.tagger.Tokenize(corr.Text)
	diag.Tokens = toks
	top := types.Clause{Text: corr.Text}

	if c.cfg.MultiIntent {
		classify := func(cl types.Clause) types.Result {
			r, trace := c.runClause(cl, cl.Text, c.tagger.Tokenize(cl.Text), corr)
			diag.Clauses = append(diag.Clauses, trace)
			return r
		}
		merged, plan, ok := c.multi.Handle(top, toks, classify)
		diag.Plan = plan
		if ok {
			merged.Header.InputTracking = tracking(query, corr)
			c.flagLowConfidence(&merged)
			diag.Result = merged
			return merged, diag
		}
		diag.Clauses = nil
	}

	r, trace := c.runClause(top, query, toks, corr)
	diag.Clauses = append(diag.Clauses, trace)
	diag.Result = r
	return r, diag
}

// finish stamps timing, records metrics and logs one line per query
func (c *Classifier) finish(r *types.Result, start time.Time) {
	elapsed := timeNow().Sub(start)
	r.QueryMetadata.ProcessingTimeMs = float64(elapsed.Microseconds()) / 1000
	if c.metrics != nil {
		c.metrics.RecordClassification(r, elapsed, c.cfg.LowConfidenceThreshold)
	}
	c.logger.Debugw("Classified query",
		logger.FieldQuery, r.Header.InputTracking.OriginalInput,
		logger.FieldDomain, r.Domain(),
		logger.FieldIntent, r.Intent(),
		logger.FieldAction, r.Action(),
		logger.FieldConfidence, r.Confidence,
		logger.FieldCacheHit, r.QueryMetadata.CacheHit,
		logger.FieldClauses, len(r.QueryMetadata.Clauses),
		logger.FieldDurationMS, r.QueryMetadata.ProcessingTimeMs,
	)
}

func (c *Classifier) flagLowConfidence(r *types.Result) {
	if r.Confidence < c.cfg.LowConfidenceThreshold && !r.HasError(types.CodeLowConfidence) {
		r.Errors = append(r.Errors, types.ErrorEntry{
			Code:     types.CodeLowConfidence,
			Message:  "The query was understood with low confidence; results may not match what was asked.",
			Severity: types.SeverityWarning,
		})
	}
}

func tracking(query string, corr spell.Correction) types.InputTracking {
	t := types.InputTracking{OriginalInput: query, CorrectionConfidence: corr.Confidence}
	if corr.Changed() {
		text := corr.Text
		t.CorrectedInput = &text
	}
	return t
}

// errorResult is the ERROR-domain shape shared by EMPTY_INPUT and
// PROCESSING_ERROR
func errorResult(query, code, message string) types.Result {
	return types.Result{
		Header: types.Header{InputTracking: types.InputTracking{OriginalInput: query}},
		QueryMetadata: types.QueryMetadata{
			QueryType:  types.DomainError,
			Intent:     types.IntentError,
			ActionType: types.ActionErrorHandling,
		},
		Entities:        []types.EntityFilter{},
		DisplayEntities: []string{},
		Errors:          []types.ErrorEntry{{Code: code, Message: message, Severity: types.SeverityBlocker}},
		Confidence:      0,
	}
}
