package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anon-aadhaar/anon-aadhaar-noir/internal/circuitinput"
	dErrors "github.com/anon-aadhaar/anon-aadhaar-noir/pkg/domain-errors"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/platform/httputil"
	"github.com/anon-aadhaar/anon-aadhaar-noir/pkg/requestcontext"
)

// Service defines the pipeline operations exposed over HTTP.
type Service interface {
	Generate(ctx context.Context, req circuitinput.Request) (*circuitinput.CircuitInput, error)
	Prove(ctx context.Context, req circuitinput.Request) (*circuitinput.ProofResult, error)
}

// Handler wires circuit-input endpoints to the pipeline service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a circuit-input handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/circuit-inputs", h.HandleGenerate)
	r.Post("/v1/proofs", h.HandleProve)
}

// HandleGenerate handles POST /v1/circuit-inputs.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := requestcontext.Now(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	input, err := h.service.Generate(ctx, req.ToRequest())
	if err != nil {
		h.logFailure(ctx, "circuit input request failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "circuit input served",
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &GenerateResponse{
		RequestID: requestID,
		Input:     input,
	})
}

// HandleProve handles POST /v1/proofs.
func (h *Handler) HandleProve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := requestcontext.Now(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Prove(ctx, req.ToRequest())
	if err != nil {
		h.logFailure(ctx, "proof request failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "proof served",
		"request_id", requestID,
		"verified", result.Verified,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromProofResult(requestID, result))
}

// logFailure logs client-caused failures at warn and the rest at error.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	level := slog.LevelError
	if httputil.StatusFor(dErrors.CodeOf(err)) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"error", err,
	)
}
