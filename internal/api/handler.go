package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/executor"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

const (
	MessageContentRequired = "Content is required."
	MessageInvalidBody     = "Invalid request body."
)

type Handler struct {
	executor *executor.Executor
	logger   *zerolog.Logger
}

func NewHandler(executor *executor.Executor, logger *zerolog.Logger) *Handler {
	return &Handler{
		executor: executor,
		logger:   logger,
	}
}

// POST /decide
// Body: DecisionRequest
// Returns: DecisionResult
func (h *Handler) Decide(req *restful.Request, resp *restful.Response) {
	requestID := middleware.GetRequestID(req)
	h.logger.Info().Str("requestID", requestID).Msg("Received a decision request")

	// Decoded directly so the body is read as JSON whatever Content-Type says.
	var decisionRequest models.DecisionRequest
	if err := json.NewDecoder(req.Request.Body).Decode(&decisionRequest); err != nil {
		if errors.Is(err, io.EOF) {
			middleware.HandleError(resp, http.StatusBadRequest, MessageContentRequired)
			return
		}
		h.logger.Error().Err(err).Str("requestID", requestID).Msg("Failed to parse request body")
		middleware.HandleError(resp, http.StatusBadRequest, MessageInvalidBody)
		return
	}

	if decisionRequest.Content == "" {
		middleware.HandleError(resp, http.StatusBadRequest, MessageContentRequired)
		return
	}

	ctx := req.Request.Context()

	result, err := h.executor.Execute(ctx, requestID, decisionRequest.Content)
	if err != nil {
		h.logger.Error().Err(err).Str("requestID", requestID).Msg("An unexpected error occurred")
		middleware.HandleError(resp, http.StatusInternalServerError, middleware.MessageInternal)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
