package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sqlgate/internal/storage"
)

type memStore struct {
	mu      sync.RWMutex
	byID    map[string]storage.Submission
	byOwner map[string][]string // owner -> submission ids, insertion order
}

// New creates a new in-memory submission store.
func New() storage.Store {
	return &memStore{
		byID:    make(map[string]storage.Submission),
		byOwner: make(map[string][]string),
	}
}

// Save adds a submission to the store.
func (m *memStore) Save(ctx context.Context, s storage.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ID == "" {
		return fmt.Errorf("submission id is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[s.ID]; exists {
		return fmt.Errorf("submission %s already exists", s.ID)
	}

	m.byID[s.ID] = s
	m.byOwner[s.Owner] = append(m.byOwner[s.Owner], s.ID)
	return nil
}

// Get returns a submission by id.
func (m *memStore) Get(ctx context.Context, id string) (storage.Submission, error) {
	if err := ctx.Err(); err != nil {
		return storage.Submission{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byID[id]
	if !ok {
		return storage.Submission{}, fmt.Errorf("get %s: %w", id, storage.ErrNotFound)
	}
	return s, nil
}

// ListByOwner returns a copy of the owner's submissions, newest first.
func (m *memStore) ListByOwner(ctx context.Context, owner string) ([]storage.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	ids := m.byOwner[owner]
	out := make([]storage.Submission, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.byID[id])
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
