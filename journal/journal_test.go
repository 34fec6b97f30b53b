package journal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/contractq/db"
	"github.com/teranos/contractq/errors"
	cqtest "github.com/teranos/contractq/internal/testing"
	"github.com/teranos/contractq/nlq/types"
)

func result(query string, domain types.Domain, action string, confidence float64) types.Result {
	return types.Result{
		Header:        types.Header{InputTracking: types.InputTracking{OriginalInput: query}},
		QueryMetadata: types.QueryMetadata{QueryType: domain, ActionType: action},
		Confidence:    confidence,
	}
}

func fixedClock(t *testing.T) {
	t.Helper()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	n := 0
	timeNow = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	t.Cleanup(func() { timeNow = time.Now })
}

func TestRecordAndRecent(t *testing.T) {
	fixedClock(t)
	j := New(cqtest.CreateTestDB(t), zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	corrected := "show contract 12345"
	misspelled := result("shw contrct 12345", types.DomainContracts, types.ActionContractsByContractNumber, 0.9)
	misspelled.Header.InputTracking.CorrectedInput = &corrected

	first, err := j.Record(ctx, misspelled)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, corrected, first.Corrected)

	cached := result("show parts for contract 123456", types.DomainParts, types.ActionPartsByContract, 0.85)
	cached.QueryMetadata.CacheHit = true
	_, err = j.Record(ctx, cached)
	require.NoError(t, err)

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "show parts for contract 123456", entries[0].Query, "newest first")
	assert.Equal(t, types.DomainParts, entries[0].Domain)
	assert.True(t, entries[0].CacheHit)

	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, corrected, entries[1].Corrected)
	assert.Equal(t, types.ActionContractsByContractNumber, entries[1].Action)
	assert.InDelta(t, 0.9, entries[1].Confidence, 1e-9)
	assert.False(t, entries[1].CacheHit)
	assert.True(t, first.CreatedAt.Equal(entries[1].CreatedAt))
}

func TestRecentLimit(t *testing.T) {
	fixedClock(t)
	j := New(cqtest.CreateTestDB(t), zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := j.Record(ctx, result(fmt.Sprintf("contract 12345%d", i), types.DomainContracts, types.ActionContractsByContractNumber, 0.95))
		require.NoError(t, err)
	}

	entries, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "contract 123454", entries[0].Query)
	assert.Equal(t, "contract 123453", entries[1].Query)

	entries, err = j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestRecentEmpty(t *testing.T) {
	j := New(cqtest.CreateTestDB(t), nil)

	entries, err := j.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSummary(t *testing.T) {
	j := New(cqtest.CreateTestDB(t), zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	for _, r := range []types.Result{
		result("contract 123456", types.DomainContracts, types.ActionContractsByContractNumber, 0.9),
		result("account 12345", types.DomainContracts, types.ActionContractsByCustomerNumber, 0.8),
		result("part AE12345", types.DomainParts, types.ActionPartsByPartNumber, 0.7),
		result("", types.DomainError, types.ActionErrorHandling, 0),
	} {
		_, err := j.Record(ctx, r)
		require.NoError(t, err)
	}

	s, err := j.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Total)
	assert.Equal(t, map[types.Domain]int64{
		types.DomainContracts: 2,
		types.DomainParts:     1,
		types.DomainError:     1,
	}, s.ByDomain)
	assert.InDelta(t, 0.6, s.MeanConfidence, 0.001)
}

func TestSummaryEmpty(t *testing.T) {
	j := New(cqtest.CreateTestDB(t), nil)

	s, err := j.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.MeanConfidence)
	assert.Empty(t, s.ByDomain)
}

func TestRecord_Sqlmock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	prev := newID
	newID = func() string { return "entry-1" }
	t.Cleanup(func() { newID = prev })
	fixedClock(t)

	mock.ExpectExec(`INSERT INTO classifications`).
		WithArgs("entry-1", "contract 123456", "", "CONTRACTS", types.ActionContractsByContractNumber, 0.95, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	j := New(conn, zaptest.NewLogger(t).Sugar())
	e, err := j.Record(context.Background(), result("contract 123456", types.DomainContracts, types.ActionContractsByContractNumber, 0.95))
	require.NoError(t, err)
	assert.Equal(t, "entry-1", e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordErrors_Sqlmock(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		closed bool
	}{
		{"constraint", errors.New("UNIQUE constraint failed: classifications.id"), false},
		{"closed", errors.New("sql: database is closed"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer conn.Close()

			mock.ExpectExec(`INSERT INTO classifications`).WillReturnError(tt.err)

			j := New(conn, zaptest.NewLogger(t).Sugar())
			_, err = j.Record(context.Background(), result("contract 123456", types.DomainContracts, types.ActionContractsByContractNumber, 0.95))
			require.Error(t, err)
			assert.Equal(t, tt.closed, errors.Is(err, db.ErrDatabaseClosed))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSummary_Sqlmock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"domain", "count", "sum"}).
		AddRow("CONTRACTS", int64(3), 2.7).
		AddRow("HELP", int64(1), 0.8)
	mock.ExpectQuery(`SELECT domain, COUNT\(\*\)`).WillReturnRows(rows)

	j := New(conn, zaptest.NewLogger(t).Sugar())
	s, err := j.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Total)
	assert.Equal(t, int64(1), s.ByDomain[types.DomainHelp])
	assert.InDelta(t, 0.88, s.MeanConfidence, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent_SqlmockScanError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("only-one-column")
	mock.ExpectQuery(`SELECT id, query`).WithArgs(3).WillReturnRows(rows)

	j := New(conn, zaptest.NewLogger(t).Sugar())
	_, err = j.Recent(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan classification")
}
