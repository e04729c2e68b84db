package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/live-match/internal/usecase"
)

type internalJobRequest struct {
	MaxWorkers int `json:"max_workers" validate:"gte=0,lte=32"`
}

func (h *Handler) RunOverdueSweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunOverdueSweepJob")
	defer span.End()

	req, err := decodeInternalJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.liveGameService.SweepOverdue(ctx, usecase.SweepInput{MaxWorkers: h.workersFor(req)})
	if err != nil {
		h.logger.WarnContext(ctx, "run overdue sweep job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunReplayAuditJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReplayAuditJob")
	defer span.End()

	req, err := decodeInternalJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.liveGameService.AuditReplays(ctx, usecase.AuditInput{MaxWorkers: h.workersFor(req)})
	if err != nil {
		h.logger.WarnContext(ctx, "run replay audit job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if result.Diverged > 0 {
		h.logger.WarnContext(ctx, "replay audit found diverged games", "diverged", result.Diverged, "checked", result.Checked)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) workersFor(req internalJobRequest) int {
	if req.MaxWorkers > 0 {
		return req.MaxWorkers
	}
	return h.jobWorkers
}

func decodeInternalJobRequest(r *http.Request) (internalJobRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalJobRequest{}, nil
		}
		return internalJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
