package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a submission id is unknown to the store.
var ErrNotFound = errors.New("submission not found")

// Kind is the input type forwarded to the hub.
type Kind string

const (
	KindSQL  Kind = "SQL"
	KindText Kind = "TEXT"
)

// Submission is one request that passed the gate and was forwarded to the hub.
type Submission struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Kind      Kind      `json:"kind"`
	Statement string    `json:"statement"`
	Command   string    `json:"command,omitempty"`
	Table     string    `json:"table,omitempty"`
	HubID     string    `json:"hub_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store records forwarded submissions.
//
// Different implementations are possible:
//   - in-memory (for local runs & tests)
//   - Postgres via pgx
type Store interface {
	// Save records a new submission. Saving an existing id is an error.
	Save(ctx context.Context, s Submission) error

	// Get returns the submission with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (Submission, error)

	// ListByOwner returns the owner's submissions, newest first.
	ListByOwner(ctx context.Context, owner string) ([]Submission, error)
}
