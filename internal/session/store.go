// Package session owns the draft workflow state that bridges the two wizard
// steps: the staged scalar record in a page-surviving store, and binary
// attachments in a separate transient in-memory store. The split exists
// because attachments must never be serialized into the staged store.
package session

import (
	"context"
	"errors"

	"github.com/madhupandey29/shopy-admin-api/internal/draft"
)

var (
	// ErrNotStaged means no base-info commit exists for the session; the
	// metadata step treats it as a redirect back to step one, not a failure.
	ErrNotStaged = errors.New("no staged draft for session")
)

// Store keeps the staged record between wizard steps. Put overwrites any prior
// record for the key; Delete is called exactly once, after a successful
// submission.
type Store interface {
	Put(ctx context.Context, key string, rec *draft.StagedRecord) error
	Get(ctx context.Context, key string) (*draft.StagedRecord, error)
	Delete(ctx context.Context, key string) error
}
