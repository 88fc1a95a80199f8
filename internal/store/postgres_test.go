package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS snapshots`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO snapshots`).
		WithArgs(pgxmock.AnyArg(), 2, 1, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO snapshot_payloads`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	snap, err := s.SaveSnapshot(context.Background(), testAccounts(), testEvents())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 2, snap.AccountCount)
	assert.Equal(t, 1, snap.EventCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLatest(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "account_count", "event_count", "created_at", "accounts", "events"}).
		AddRow("snap-1", 1, 0, now,
			[]byte(`[{"company_name":"Acme","domain":"acme.com"}]`),
			[]byte(`[]`))
	mock.ExpectQuery(`SELECT s.id, s.account_count`).WillReturnRows(rows)

	accounts, events, snap, err := s.LoadLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snap-1", snap.ID)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acme.com", accounts[0].Domain)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLatest_NoSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT s.id, s.account_count`).WillReturnError(pgx.ErrNoRows)

	_, _, _, err := s.LoadLatest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSnapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSnapshots(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "account_count", "event_count", "created_at"}).
		AddRow("snap-2", 5, 9, now).
		AddRow("snap-1", 3, 4, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT id, account_count`).WithArgs(20).WillReturnRows(rows)

	snaps, err := s.ListSnapshots(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "snap-2", snaps[0].ID)
	assert.Equal(t, 5, snaps[0].AccountCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
