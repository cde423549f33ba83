package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"

	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/triage"
)

// PostgresStore persists sessions as jsonb rows. Sessions survive restarts;
// expiry of idle rows is left to an external job.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			state      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context, id string) (*triage.Session, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = $1`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonStoreLoad)
	}

	var sess triage.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonStoreLoad)
	}
	return &sess, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, id string, sess *triage.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreSave)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, state, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		id, raw)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreSave)
	}
	return nil
}

// Clear implements Store.
func (s *PostgresStore) Clear(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonStoreClear)
	}
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
