package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/madhupandey29/shopy-admin-api/internal/draft"
)

// PostgresStore keeps staged records in the draft_sessions table for
// deployments that want drafts to survive service restarts. The table is
// managed by the goose migrations under migrations/.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, key string, rec *draft.StagedRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode staged record: %w", err)
	}

	query := `
		INSERT INTO draft_sessions (session_key, record, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key)
		DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, buf, time.Now()); err != nil {
		return fmt.Errorf("failed to store staged record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*draft.StagedRecord, error) {
	query := `SELECT record FROM draft_sessions WHERE session_key = $1`

	var buf []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&buf)
	if err == sql.ErrNoRows {
		return nil, ErrNotStaged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged record: %w", err)
	}

	var rec draft.StagedRecord
	if err := json.Unmarshal(buf, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode staged record: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM draft_sessions WHERE session_key = $1`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to clear staged record: %w", err)
	}
	return nil
}
