package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sqlgate/internal/hub"
	"sqlgate/internal/storage"
)

var (
	ErrNotStarted   = errors.New("gate not started")
	ErrMissingOwner = errors.New("owner wallet is required")
	ErrEmptyRequest = errors.New("either sql or semantic text is required")
)

// RejectedError is returned by Submit when a statement fails validation.
// Nothing is forwarded in that case.
type RejectedError struct {
	Verdict Verdict
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("statement rejected (%s): %s", e.Verdict.Reason, e.Verdict.Message)
}

// SubmitInput is one user request. Semantic takes precedence over SQL;
// Table only applies to semantic queries.
type SubmitInput struct {
	Owner    string
	SQL      string
	Semantic string
	Table    string
}

// Receipt is returned for a forwarded request.
type Receipt struct {
	Submission storage.Submission `json:"submission"`
	Hub        *hub.ProofResponse `json:"hub"`
}

// Submit validates the input, forwards it to the hub and records it.
func (g *Gate) Submit(ctx context.Context, in SubmitInput) (*Receipt, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	if strings.TrimSpace(in.Owner) == "" {
		return nil, ErrMissingOwner
	}

	sub := storage.Submission{Owner: in.Owner}
	var inputs hub.ModelInputs

	switch {
	case strings.TrimSpace(in.Semantic) != "":
		sub.Kind = storage.KindText
		sub.Statement = strings.TrimSpace(in.Semantic)
		sub.Table = in.Table
		inputs = hub.TextInputs(sub.Statement, in.Table)

	case strings.TrimSpace(in.SQL) != "":
		v := g.Check(in.SQL)
		if !v.Valid {
			return nil, &RejectedError{Verdict: v}
		}
		sub.Kind = storage.KindSQL
		sub.Statement = v.Normalized
		sub.Command = v.Command
		sub.Table = v.Table
		inputs = hub.SQLInputs(v.Normalized)

	default:
		return nil, ErrEmptyRequest
	}

	req, err := hub.NewProofRequest(g.chain, in.Owner, g.model, inputs)
	if err != nil {
		return nil, err
	}

	resp, err := g.remote.CreateProofRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}

	sub.CreatedAt = g.now().UTC()
	sub.HubID = resp.ID
	if sub.ID, err = g.ids.next(sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("submission id: %w", err)
	}

	if err := g.store.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}

	return &Receipt{Submission: sub, Hub: resp}, nil
}

// History returns the owner's forwarded submissions, newest first.
func (g *Gate) History(ctx context.Context, owner string) ([]storage.Submission, error) {
	if !g.started {
		return nil, ErrNotStarted
	}
	if strings.TrimSpace(owner) == "" {
		return nil, ErrMissingOwner
	}
	return g.store.ListByOwner(ctx, owner)
}
