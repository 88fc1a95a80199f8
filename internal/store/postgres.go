package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY,
	account_count INTEGER NOT NULL,
	event_count   INTEGER NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshot_payloads (
	snapshot_id TEXT PRIMARY KEY REFERENCES snapshots(id),
	accounts    JSONB NOT NULL,
	events      JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, accounts []model.Account, events []model.EngagementEvent) (*model.Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	accountsJSON, err := json.Marshal(accounts)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal accounts")
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal events")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, account_count, event_count, created_at) VALUES ($1, $2, $3, $4)`,
		id, len(accounts), len(events), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert snapshot")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshot_payloads (snapshot_id, accounts, events) VALUES ($1, $2, $3)`,
		id, accountsJSON, eventsJSON,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert payload")
	}

	return &model.Snapshot{
		ID:           id,
		AccountCount: len(accounts),
		EventCount:   len(events),
		CreatedAt:    now,
	}, nil
}

func (s *PostgresStore) LoadLatest(ctx context.Context) ([]model.Account, []model.EngagementEvent, *model.Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT s.id, s.account_count, s.event_count, s.created_at, p.accounts, p.events
		FROM snapshots s
		JOIN snapshot_payloads p ON p.snapshot_id = s.id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT 1`)

	var (
		snap         model.Snapshot
		accountsJSON []byte
		eventsJSON   []byte
	)
	err := row.Scan(&snap.ID, &snap.AccountCount, &snap.EventCount, &snap.CreatedAt, &accountsJSON, &eventsJSON)
	if err == pgx.ErrNoRows {
		return nil, nil, nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "postgres: load latest snapshot")
	}

	var accounts []model.Account
	if err := json.Unmarshal(accountsJSON, &accounts); err != nil {
		return nil, nil, nil, eris.Wrap(err, "postgres: unmarshal accounts")
	}
	var events []model.EngagementEvent
	if err := json.Unmarshal(eventsJSON, &events); err != nil {
		return nil, nil, nil, eris.Wrap(err, "postgres: unmarshal events")
	}

	return accounts, events, &snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, account_count, event_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.AccountCount, &snap.EventCount, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: iterate snapshots")
}
