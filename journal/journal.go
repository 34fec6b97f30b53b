// Package journal appends classified queries to the SQLite
// classifications table and reads them back for history and summaries.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/contractq/db"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/nlq/types"
)

var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// DefaultLimit is used by Recent when limit <= 0
const DefaultLimit = 20

// Entry is one journaled classification
type Entry struct {
	ID         string       `json:"id" yaml:"id"`
	Query      string       `json:"query" yaml:"query"`
	Corrected  string       `json:"corrected,omitempty" yaml:"corrected,omitempty"`
	Domain     types.Domain `json:"domain" yaml:"domain"`
	Action     string       `json:"action" yaml:"action"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
	CacheHit   bool         `json:"cacheHit" yaml:"cacheHit"`
	CreatedAt  time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Summary aggregates the whole journal
type Summary struct {
	Total          int64                  `json:"total" yaml:"total"`
	ByDomain       map[types.Domain]int64 `json:"byDomain" yaml:"byDomain"`
	MeanConfidence float64                `json:"meanConfidence" yaml:"meanConfidence"`
}

// Journal stores entries in a migrated database
type Journal struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// New creates a journal over conn, which must already be migrated
func New(conn *sql.DB, log *zap.SugaredLogger) *Journal {
	if log == nil {
		log = logger.ComponentLogger("journal")
	}
	return &Journal{db: conn, logger: log}
}

// Open opens and migrates the database at path and returns a journal over it
func Open(path string, log *zap.SugaredLogger) (*Journal, error) {
	conn, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	return New(conn, log), nil
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends r and returns the stored entry
func (j *Journal) Record(ctx context.Context, r types.Result) (Entry, error) {
	e := Entry{
		ID:         newID(),
		Query:      r.Header.InputTracking.OriginalInput,
		Corrected:  util.Deref(r.Header.InputTracking.CorrectedInput),
		Domain:     r.Domain(),
		Action:     r.Action(),
		Confidence: r.Confidence,
		CacheHit:   r.QueryMetadata.CacheHit,
		CreatedAt:  timeNow().UTC(),
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO classifications (id, query, corrected, domain, action, confidence, cache_hit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Query, e.Corrected, string(e.Domain), e.Action, e.Confidence, e.CacheHit, e.CreatedAt,
	)
	if err != nil {
		if db.IsDatabaseClosed(err) {
			return Entry{}, errors.Wrap(db.ErrDatabaseClosed, err.Error())
		}
		return Entry{}, errors.Wrapf(err, "record classification %s", e.ID)
	}

	logger.FromContext(ctx, j.logger).Debugw("Journaled classification",
		logger.FieldEntryID, e.ID,
		logger.FieldDomain, e.Domain,
	)
	return e, nil
}

// Recent returns the newest entries first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, query, corrected, domain, action, confidence, cache_hit, created_at
		FROM classifications
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query recent classifications")
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var domain string
		if err := rows.Scan(&e.ID, &e.Query, &e.Corrected, &domain, &e.Action, &e.Confidence, &e.CacheHit, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan classification")
		}
		e.Domain = types.Domain(domain)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate classifications")
	}
	return entries, nil
}

// Summary counts entries per domain and averages their confidence
func (j *Journal) Summary(ctx context.Context) (*Summary, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT domain, COUNT(*), COALESCE(SUM(confidence), 0)
		FROM classifications
		GROUP BY domain
		ORDER BY domain`)
	if err != nil {
		return nil, errors.Wrap(err, "summarize classifications")
	}
	defer rows.Close()

	s := &Summary{ByDomain: make(map[types.Domain]int64)}
	var confidenceSum float64
	for rows.Next() {
		var domain string
		var count int64
		var sum float64
		if err := rows.Scan(&domain, &count, &sum); err != nil {
			return nil, errors.Wrap(err, "scan summary row")
		}
		s.ByDomain[types.Domain(domain)] = count
		s.Total += count
		confidenceSum += sum
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate summary rows")
	}
	if s.Total > 0 {
		s.MeanConfidence = util.Round2(confidenceSum / float64(s.Total))
	}
	return s, nil
}
