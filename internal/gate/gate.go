// Package gate decides whether a user-authored statement may be forwarded to
// the hub, forwards it when it may, and records what was forwarded.
package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"sqlgate/internal/hub"
	"sqlgate/internal/storage"
)

// Forwarder sends accepted requests downstream.
type Forwarder interface {
	CreateProofRequest(ctx context.Context, req hub.ProofRequest) (*hub.ProofResponse, error)
}

// Tracker reads forwarded requests back from the hub.
type Tracker interface {
	ListProofRequests(ctx context.Context, owner string) (json.RawMessage, error)
	GetProofRequest(ctx context.Context, owner, id string) (json.RawMessage, error)
}

// Remote is the downstream side of the gate. *hub.Client implements it.
type Remote interface {
	Forwarder
	Tracker
}

// Options configures a Gate. Zero values fall back to defaults.
type Options struct {
	// CacheSize is the number of verdicts kept in the LRU cache.
	CacheSize int
	Chain     string
	Model     string
}

const (
	DefaultCacheSize = 1024
	DefaultChain     = "aptos_testnet"
	DefaultModel     = "zerokdb"
)

// Gate is the main entry point: validation, forwarding and history.
type Gate struct {
	started  bool
	store    storage.Store
	remote   Remote
	verdicts *lru.Cache[uint64, Verdict]
	ids      *idSource
	chain    string
	model    string
	now      func() time.Time
}

// New creates a Gate. It must be started before use.
func New(store storage.Store, remote Remote, opts Options) (*Gate, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Chain == "" {
		opts.Chain = DefaultChain
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cache, err := lru.New[uint64, Verdict](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("verdict cache: %w", err)
	}

	return &Gate{
		store:    store,
		remote:   remote,
		verdicts: cache,
		ids:      newIDSource(),
		chain:    opts.Chain,
		model:    opts.Model,
		now:      time.Now,
	}, nil
}

// Start runs initialization steps for the gate.
func (g *Gate) Start() error {
	if g.started {
		return fmt.Errorf("gate already started")
	}
	if g.store == nil || g.remote == nil {
		return fmt.Errorf("gate needs a store and a remote hub")
	}
	g.started = true
	return nil
}
