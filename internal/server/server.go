// Package server exposes the loan simulator as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-simulator/internal/config"
	"github.com/iwvelando/mortgage-simulator/internal/store"
	"github.com/iwvelando/mortgage-simulator/pkg/adapters"
	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	store       store.Store
	maxBodySize int64
	version     string
}

// Options configures NewHandler. A nil Limiter disables rate limiting.
type Options struct {
	MaxBodySize int64
	Version     string
	Limiter     *RateLimiter
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, st store.Store, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, store: st, maxBodySize: maxBodySize, version: version}

	api := http.NewServeMux()
	api.HandleFunc("POST /api/loans/simulate", h.handleSimulate)
	api.HandleFunc("GET /api/loans/simulations", h.handleList)
	api.HandleFunc("GET /api/loans/simulations/{id}", h.handleGet)
	api.HandleFunc("DELETE /api/loans/simulations/{id}", h.handleDelete)
	api.HandleFunc("POST /api/loans/adapt", h.handleAdapt)

	var limited http.Handler = api
	if opts.Limiter != nil {
		limited = RateLimitMiddleware(logger, opts.Limiter, api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/loans/", limited)

	// Version endpoint for client metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	return mux
}

type simulateRequest struct {
	Principal  float64              `json:"principal"`
	Config     *config.LoanSettings `json:"config"`
	ClientID   string               `json:"clientId"`
	PropertyID string               `json:"propertyId"`
}

type simulateResponse struct {
	store.Record
	Warnings []string `json:"warnings,omitempty"`
}

type adaptRequest struct {
	Result         json.RawMessage   `json:"result"`
	ConfigSnapshot *loans.LoanConfig `json:"configSnapshot"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	start := time.Now()

	var req simulateRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	if req.Principal <= 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "principal must be positive", op)
		return
	}

	loanConfig := loans.DefaultLoanConfig()
	if req.Config != nil {
		loanConfig = req.Config.Apply(loanConfig)
	}
	if err := validation.CheckLoanInputs(req.Principal, loanConfig); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid loan configuration: %v", err), op)
		return
	}
	warnings := validation.ValidateLoanConfig("request", req.Principal, loanConfig)
	loanConfig = loanConfig.Normalized()

	result := loans.Simulate(h.logger, req.Principal, loanConfig)
	if err := validation.CheckResult(result); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, fmt.Sprintf("simulation cannot be represented: %v", err), op)
		return
	}
	record := store.NewRecord(req.Principal, loanConfig, req.ClientID, req.PropertyID, result)

	if err := h.store.Save(r.Context(), record); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to save simulation: %v", err), op)
		return
	}

	h.logger.Info("simulation saved",
		zap.String("op", op),
		zap.String("id", record.ID),
		zap.Float64("principal", record.Principal),
		zap.Int("periods", len(result.Schedule)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusCreated, simulateResponse{Record: record, Warnings: warnings})
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list simulations: %v", err), "server.handleList")
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGet"
	id := r.PathValue("id")

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, id, op)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDelete"
	id := r.PathValue("id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, id, op)
		return
	}

	h.logger.Info("simulation deleted",
		zap.String("op", op),
		zap.String("id", id),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleAdapt(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAdapt"

	var req adaptRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if len(req.Result) == 0 || string(req.Result) == "null" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing result payload", op)
		return
	}

	backend, err := adapters.DecodeBackendResult(req.Result)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid result payload: %v", err), op)
		return
	}

	result := adapters.AdaptBackendResult(backend, req.ConfigSnapshot)
	if err := validation.CheckResult(result); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, fmt.Sprintf("adapted result cannot be represented: %v", err), op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeBody decodes a size-limited JSON body into dst, responding with an
// error and returning false when it cannot.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, id string, op string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("simulation %s not found", id), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(h.logger, w, status, payload)
}

// writeJSON encodes payload before writing the status line, so an encoding
// failure is reported as a 500 rather than an empty body.
func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}
