// Package hub is a small client for the downstream proof-request backend.
// Statements reach it only after they pass the gate.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// nameLimit is the number of characters of the query used as request name.
const nameLimit = 30

// ModelInputs is what the model receives: either normalized SQL or a
// semantic text query against a table.
type ModelInputs struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// TextValue is the value of a TEXT model input.
type TextValue struct {
	Text      string `json:"text"`
	TableName string `json:"table_name,omitempty"`
}

// SQLInputs builds inputs for an already validated and normalized statement.
func SQLInputs(normalized string) ModelInputs {
	return ModelInputs{Type: "SQL", Value: normalized}
}

// TextInputs builds inputs for a semantic query.
func TextInputs(text, table string) ModelInputs {
	return ModelInputs{Type: "TEXT", Value: TextValue{Text: text, TableName: table}}
}

// text returns the human-readable part of the inputs.
func (in ModelInputs) text() string {
	switch v := in.Value.(type) {
	case string:
		return v
	case TextValue:
		return v.Text
	default:
		return ""
	}
}

// ProofRequest is the body of POST /proof_requests.
// AIModelInputs is itself a JSON document encoded as a string.
type ProofRequest struct {
	Chain         string `json:"chain"`
	OwnerWallet   string `json:"owner_wallet"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	AIModelName   string `json:"ai_model_name"`
	AIModelInputs string `json:"ai_model_inputs"`
}

// NewProofRequest assembles a request for owner on chain using model.
func NewProofRequest(chain, owner, model string, in ModelInputs) (ProofRequest, error) {
	encoded, err := json.Marshal(in)
	if err != nil {
		return ProofRequest{}, fmt.Errorf("encode model inputs: %w", err)
	}
	text := in.text()
	return ProofRequest{
		Chain:         chain,
		OwnerWallet:   owner,
		Name:          truncate(text, nameLimit),
		Description:   text,
		AIModelName:   model,
		AIModelInputs: string(encoded),
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ProofResponse is the hub's answer to a created request.
// ID is extracted from the body's "id" field when present; Raw keeps the
// full body for callers.
type ProofResponse struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"raw"`
}

// StatusError is returned for non-2xx hub responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hub returned %d: %s", e.Code, e.Body)
}

// Client talks to the hub over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client. token is sent in the Auth-Token header.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateProofRequest submits req and returns the created request.
func (c *Client) CreateProofRequest(ctx context.Context, req ProofRequest) (*ProofResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode proof request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/proof_requests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return &ProofResponse{
		ID:  hubID(raw),
		Raw: raw,
	}, nil
}

// hubID extracts the "id" field of a hub response. Numbers keep their
// textual form; null, a missing field or a body that is not an object
// yield "".
func hubID(raw json.RawMessage) string {
	var meta struct {
		ID any `json:"id"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&meta); err != nil {
		return ""
	}
	switch v := meta.ID.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// ListProofRequests returns the hub's requests for owner as raw JSON.
func (c *Client) ListProofRequests(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/proof_requests/"+url.PathEscape(owner), nil)
}

// GetProofRequest returns a single request of owner as raw JSON.
// The hub serves it at /{owner}/{id}, outside the /proof_requests prefix.
func (c *Client) GetProofRequest(ctx context.Context, owner, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/"+url.PathEscape(owner)+"/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build hub request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Auth-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read hub response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("hub %s %s: response is not JSON", method, path)
	}
	return data, nil
}
