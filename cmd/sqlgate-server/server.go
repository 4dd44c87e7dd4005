package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"sqlgate/internal/gate"
	"sqlgate/internal/hub"
	"sqlgate/internal/storage"
)

const (
	headerRequestID = "X-Request-ID"
	headerOwner     = "X-Owner-Wallet"

	maxBodyBytes = 1 << 20
)

type ctxKey struct{}

type server struct {
	gate   *gate.Gate
	logger *slog.Logger
}

func newServer(g *gate.Gate, logger *slog.Logger) *server {
	return &server{gate: g, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("POST /requests", s.handleSubmit)
	mux.HandleFunc("GET /requests", s.handleHistory)
	mux.HandleFunc("GET /requests/{id}", s.handleLookup)
	return s.withRequestID(mux)
}

// withRequestID propagates X-Request-ID, generating one when absent.
func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *server) log(r *http.Request) *slog.Logger {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return s.logger.With("request_id", id, "method", r.Method, "path", r.URL.Path)
}

type validateRequest struct {
	SQL string `json:"sql"`
}

type submitRequest struct {
	SQL      string `json:"sql"`
	Semantic string `json:"semantic"`
	Table    string `json:"table"`
}

type errorResponse struct {
	Error   string        `json:"error"`
	Verdict *gate.Verdict `json:"verdict,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v := s.gate.Check(req.SQL)
	s.log(r).Info("validated", "valid", v.Valid, "reason", v.Reason)
	writeJSON(w, http.StatusOK, v)
}

func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	owner := r.Header.Get(headerOwner)
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: gate.ErrMissingOwner.Error()})
		return
	}

	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rc, err := s.gate.Submit(r.Context(), gate.SubmitInput{
		Owner:    owner,
		SQL:      req.SQL,
		Semantic: req.Semantic,
		Table:    req.Table,
	})

	var (
		rejected  *gate.RejectedError
		hubStatus *hub.StatusError
	)
	switch {
	case err == nil:
		s.log(r).Info("forwarded", "owner", owner, "submission", rc.Submission.ID, "hub_id", rc.Submission.HubID)
		writeJSON(w, http.StatusOK, rc)
	case errors.As(err, &rejected):
		s.log(r).Info("rejected", "owner", owner, "reason", rejected.Verdict.Reason)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid SQL", Verdict: &rejected.Verdict})
	case errors.Is(err, gate.ErrEmptyRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &hubStatus):
		s.log(r).Warn("hub refused request", "status", hubStatus.Code)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to execute request"})
	default:
		s.log(r).Error("submit failed", "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to execute request"})
	}
}

// handleHistory lists the owner's requests. ?source=hub asks the hub
// instead of the local record.
func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	owner := r.Header.Get(headerOwner)
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: gate.ErrMissingOwner.Error()})
		return
	}

	switch src := r.URL.Query().Get("source"); src {
	case "", "local":
		subs, err := s.gate.History(r.Context(), owner)
		if err != nil {
			s.log(r).Error("history failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to retrieve requests"})
			return
		}
		writeJSON(w, http.StatusOK, subs)
	case "hub":
		raw, err := s.gate.HubHistory(r.Context(), owner)
		if err != nil {
			s.hubFailure(w, r, "hub history failed", err)
			return
		}
		writeRawJSON(w, http.StatusOK, raw)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown source " + strconv.Quote(src)})
	}
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	owner := r.Header.Get(headerOwner)
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: gate.ErrMissingOwner.Error()})
		return
	}

	st, err := s.gate.Lookup(r.Context(), owner, r.PathValue("id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, st)
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "request not found"})
	default:
		s.hubFailure(w, r, "lookup failed", err)
	}
}

// hubFailure passes a hub status code through to the client; any other
// error becomes 502.
func (s *server) hubFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var hubStatus *hub.StatusError
	if errors.As(err, &hubStatus) {
		s.log(r).Warn(msg, "status", hubStatus.Code)
		writeJSON(w, hubStatus.Code, errorResponse{Error: "failed to retrieve request"})
		return
	}
	s.log(r).Error(msg, "err", err)
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to retrieve request"})
}

// decodeBody decodes a JSON body of at most maxBodyBytes into v. On failure
// it writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}
