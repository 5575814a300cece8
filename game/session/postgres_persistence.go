package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wricardo/hexoban/game/service"
)

// DefaultPostgresTable holds sessions when no table is configured.
const DefaultPostgresTable = "hexoban_sessions"

const postgresTimeout = 5 * time.Second

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresPersistence stores sessions as JSONB rows keyed by the lower-cased
// session id.
type PostgresPersistence struct {
	pool    *pgxpool.Pool
	table   string
	puzzles service.PuzzleManager
}

// NewPostgresPersistence wraps an existing pool. Call EnsureSchema before use.
func NewPostgresPersistence(pool *pgxpool.Pool, table string, puzzles service.PuzzleManager) (*PostgresPersistence, error) {
	if table == "" {
		table = DefaultPostgresTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresPersistence{pool: pool, table: table, puzzles: puzzles}, nil
}

// EnsureSchema creates the session table when missing.
func (pp *PostgresPersistence) EnsureSchema(ctx context.Context) error {
	_, err := pp.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id text PRIMARY KEY,
		data jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`, pp.table))
	if err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	return nil
}

// Save upserts a session row
func (pp *PostgresPersistence) Save(session *service.Session) error {
	jsonData, err := encodeSession(session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	_, err = pp.pool.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, pp.table),
		strings.ToLower(session.ID), jsonData)
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Load retrieves a session by ID
func (pp *PostgresPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	var jsonData []byte
	err := pp.pool.QueryRow(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, pp.table),
		strings.ToLower(id)).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	return decodeSession(jsonData, pp.puzzles)
}

// Delete removes a session row
func (pp *PostgresPersistence) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	tag, err := pp.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pp.table), strings.ToLower(id))
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (pp *PostgresPersistence) ListAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	rows, err := pp.pool.Query(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY id`, pp.table))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session row exists
func (pp *PostgresPersistence) Exists(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), postgresTimeout)
	defer cancel()

	var exists bool
	err := pp.pool.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, pp.table),
		strings.ToLower(id)).Scan(&exists)
	return err == nil && exists
}
