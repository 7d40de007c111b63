package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps tokens in the portal_sessions table.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore wraps a pgx pool. Migrations must have run.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

// defaultRowTTL bounds rows saved without an expiry.
const defaultRowTTL = 24 * time.Hour

// Load fetches an unexpired token for id.
func (s *PostgresStore) Load(ctx context.Context, id string) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx,
		`SELECT token FROM portal_sessions WHERE id = $1 AND expires_at > $2`,
		id, s.now(),
	).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return token, err
}

// Save upserts the token for id.
func (s *PostgresStore) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultRowTTL
	}
	now := s.now()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO portal_sessions (id, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`,
		id, token, now.Add(ttl), now,
	)
	return err
}

// Delete removes id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE id = $1`, id)
	return err
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Purge deletes expired rows and returns how many were removed.
func (s *PostgresStore) Purge(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
