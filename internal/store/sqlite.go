package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY,
	account_count INTEGER NOT NULL,
	event_count   INTEGER NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS snapshot_payloads (
	snapshot_id TEXT PRIMARY KEY REFERENCES snapshots(id),
	accounts    TEXT NOT NULL,
	events      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, accounts []model.Account, events []model.EngagementEvent) (*model.Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	accountsJSON, err := json.Marshal(accounts)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal accounts")
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal events")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, account_count, event_count, created_at) VALUES (?, ?, ?, ?)`,
		id, len(accounts), len(events), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert snapshot")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_payloads (snapshot_id, accounts, events) VALUES (?, ?, ?)`,
		id, string(accountsJSON), string(eventsJSON),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert payload")
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}

	return &model.Snapshot{
		ID:           id,
		AccountCount: len(accounts),
		EventCount:   len(events),
		CreatedAt:    now,
	}, nil
}

func (s *SQLiteStore) LoadLatest(ctx context.Context) ([]model.Account, []model.EngagementEvent, *model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.account_count, s.event_count, s.created_at, p.accounts, p.events
		FROM snapshots s
		JOIN snapshot_payloads p ON p.snapshot_id = s.id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT 1`)

	var (
		snap         model.Snapshot
		accountsJSON string
		eventsJSON   string
	)
	err := row.Scan(&snap.ID, &snap.AccountCount, &snap.EventCount, &snap.CreatedAt, &accountsJSON, &eventsJSON)
	if err == sql.ErrNoRows {
		return nil, nil, nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "sqlite: load latest snapshot")
	}

	var accounts []model.Account
	if err := json.Unmarshal([]byte(accountsJSON), &accounts); err != nil {
		return nil, nil, nil, eris.Wrap(err, "sqlite: unmarshal accounts")
	}
	var events []model.EngagementEvent
	if err := json.Unmarshal([]byte(eventsJSON), &events); err != nil {
		return nil, nil, nil, eris.Wrap(err, "sqlite: unmarshal events")
	}

	return accounts, events, &snap, nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_count, event_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.AccountCount, &snap.EventCount, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: iterate snapshots")
}
