package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sqlgate/internal/storage"
)

// Status is a recorded submission together with the hub's current view of it.
// Hub is nil when the hub assigned no id.
type Status struct {
	Submission storage.Submission `json:"submission"`
	Hub        json.RawMessage    `json:"hub,omitempty"`
}

// HubHistory returns the hub's list of requests for owner as raw JSON.
func (g *Gate) HubHistory(ctx context.Context, owner string) (json.RawMessage, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	if strings.TrimSpace(owner) == "" {
		return nil, ErrMissingOwner
	}

	raw, err := g.remote.ListProofRequests(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("hub history: %w", err)
	}
	return raw, nil
}

// Lookup returns the submission id of owner. Submissions of other owners
// are reported as storage.ErrNotFound.
func (g *Gate) Lookup(ctx context.Context, owner, id string) (*Status, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	if strings.TrimSpace(owner) == "" {
		return nil, ErrMissingOwner
	}

	sub, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Owner != owner {
		return nil, fmt.Errorf("submission %q: %w", id, storage.ErrNotFound)
	}

	st := &Status{Submission: sub}
	if sub.HubID == "" {
		return st, nil
	}

	// The hub keys requests by its own id, not ours.
	raw, err := g.remote.GetProofRequest(ctx, owner, sub.HubID)
	if err != nil {
		return nil, fmt.Errorf("hub status: %w", err)
	}
	st.Hub = raw
	return st, nil
}
