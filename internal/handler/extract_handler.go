package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"anyfactor/internal/service"
)

// ExtractHandler handles the streaming feature-extraction endpoint.
type ExtractHandler struct {
	svc service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(svc service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

type extractRequest struct {
	Tickers []string `json:"tickers"`
	Feature string   `json:"feature"`
	Limit   int      `json:"limit"`
}

// Extract handles POST /api/v1/extract. It validates the request, then
// streams NDJSON progress events followed by exactly one completion event.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON with tickers and feature")
		return
	}
	if len(req.Tickers) == 0 || req.Feature == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "tickers and feature are required")
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// The run outlives a disconnected consumer: detach from the request
	// context so an aborted read does not cancel in-flight model calls.
	ctx := context.WithoutCancel(c.Request.Context())
	h.svc.Run(ctx, service.ExtractRequest{
		Tickers: req.Tickers,
		Feature: req.Feature,
		Limit:   req.Limit,
	}, newNDJSONSink(c.Writer))
}
