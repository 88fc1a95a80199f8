package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outbound-metrics/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testAccounts() []model.Account {
	arr := 5000.0
	return []model.Account{
		{CompanyName: "Acme", Domain: "acme.com", ARR: &arr, DealWon: model.OutcomeWon},
		{CompanyName: "Beta", Domain: "beta.io"},
	}
}

func testEvents() []model.EngagementEvent {
	return []model.EngagementEvent{
		{Email: "jane@acme.com", CompanyDomain: "acme.com", Opened: true, MatchedAccount: true},
	}
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, testAccounts(), testEvents())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 2, snap.AccountCount)
	assert.Equal(t, 1, snap.EventCount)

	accounts, events, loaded, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	require.Len(t, accounts, 2)
	assert.Equal(t, "acme.com", accounts[0].Domain)
	require.NotNil(t, accounts[0].ARR)
	assert.Equal(t, 5000.0, *accounts[0].ARR)
	assert.Nil(t, accounts[1].ARR)
	require.Len(t, events, 1)
	assert.True(t, events[0].Opened)
	assert.True(t, events[0].MatchedAccount)
}

func TestSQLiteStore_LoadLatest_Empty(t *testing.T) {
	s := newTestSQLite(t)

	_, _, _, err := s.LoadLatest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestSQLiteStore_LoadLatest_ReturnsNewest(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveSnapshot(ctx, testAccounts()[:1], nil)
	require.NoError(t, err)
	second, err := s.SaveSnapshot(ctx, testAccounts(), testEvents())
	require.NoError(t, err)

	_, _, loaded, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
}

func TestSQLiteStore_ListSnapshots(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SaveSnapshot(ctx, testAccounts(), nil)
		require.NoError(t, err)
	}

	snaps, err := s.ListSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	all, err := s.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteStore_EmptyDatasetsRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.AccountCount)

	accounts, events, _, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.Empty(t, events)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SaveSnapshot(context.Background(), testAccounts(), nil)
	assert.NoError(t, err)
}
