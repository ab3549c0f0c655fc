package analytics

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestMonthlyMemberCounts(t *testing.T) {
	repo, mock, close := setupAnalyticsMock(t)
	defer close()

	since := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM members`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count"}).
			AddRow("11/2024", 2).
			AddRow("03/2025", 5))

	counts, err := repo.MonthlyMemberCounts(context.Background(), since)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"11/2024": 2, "03/2025": 5}, counts)
}

func TestMonthlySessionCounts(t *testing.T) {
	repo, mock, close := setupAnalyticsMock(t)
	defer close()

	since := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE action = 'session_discount'`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count"}).
			AddRow("08/2025", 41))

	counts, err := repo.MonthlySessionCounts(context.Background(), since)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"08/2025": 41}, counts)
}

func TestMonthlyMemberCounts_Empty(t *testing.T) {
	repo, mock, close := setupAnalyticsMock(t)
	defer close()

	since := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM members`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count"}))

	counts, err := repo.MonthlyMemberCounts(context.Background(), since)
	require.NoError(t, err)
	require.Empty(t, counts)
}
