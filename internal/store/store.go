// Package store persists cleaned dataset snapshots. A snapshot is an
// immutable pair of cleaned accounts and engagement events; metric
// computations always load a full snapshot.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// ErrNoSnapshot is returned by LoadLatest when the store holds no snapshots.
var ErrNoSnapshot = eris.New("store: no snapshot available")

// Store defines snapshot persistence.
type Store interface {
	SaveSnapshot(ctx context.Context, accounts []model.Account, events []model.EngagementEvent) (*model.Snapshot, error)
	LoadLatest(ctx context.Context) ([]model.Account, []model.EngagementEvent, *model.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a store for the configured driver and runs migrations.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "sqlite":
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
