package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DevOps-In-Motion/buildalert/internal/domain"
	"github.com/DevOps-In-Motion/buildalert/internal/http/dto"
	"github.com/DevOps-In-Motion/buildalert/internal/http/envelope"
	"github.com/DevOps-In-Motion/buildalert/internal/http/middleware"
	"github.com/DevOps-In-Motion/buildalert/internal/service"
)

type WebhookHandler struct {
	service service.NotificationService
}

func NewWebhookHandler(svc service.NotificationService) *WebhookHandler {
	return &WebhookHandler{service: svc}
}

// BuildFailure handles POST /webhook/build-failure. Validation failures are
// 400s with machine-readable codes; pipeline failures are mapped per stage.
func (h *WebhookHandler) BuildFailure(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	if c.ContentType() != "application/json" {
		slog.WarnContext(ctx, "rejected non-JSON request", "content_type", c.ContentType())
		c.JSON(http.StatusBadRequest, envelope.Error(
			"Content-Type must be application/json",
			http.StatusBadRequest, "INVALID_CONTENT_TYPE", nil))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope.Error(
			"Request body is empty or invalid JSON",
			http.StatusBadRequest, "INVALID_BODY", nil))
		return
	}

	// Bare nulls and empty objects carry nothing to validate, so they get
	// the same rejection as unparseable bodies.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil || len(probe) == 0 {
		slog.WarnContext(ctx, "rejected empty or malformed body")
		c.JSON(http.StatusBadRequest, envelope.Error(
			"Request body is empty or invalid JSON",
			http.StatusBadRequest, "INVALID_BODY", nil))
		return
	}

	var req dto.BuildFailureRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Error(
			"Request body is empty or invalid JSON",
			http.StatusBadRequest, "INVALID_BODY", nil))
		return
	}

	event := domain.BuildFailureEvent{
		CommitSHA:   strings.TrimSpace(req.CommitSHA),
		AuthorEmail: strings.TrimSpace(req.AuthorEmail),
		Repo:        strings.TrimSpace(req.Repo),
		Logs:        req.Logs,
		Error:       req.Error,
	}

	if missing := event.MissingFields(); len(missing) > 0 {
		slog.WarnContext(ctx, "missing required fields", "fields", missing)
		c.JSON(http.StatusBadRequest, envelope.Error(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			http.StatusBadRequest, "MISSING_REQUIRED_FIELDS",
			map[string]any{"missing_fields": missing}))
		return
	}

	if !domain.ValidEmail(event.AuthorEmail) {
		slog.WarnContext(ctx, "invalid author email format")
		c.JSON(http.StatusBadRequest, envelope.Error(
			fmt.Sprintf("Invalid email format: %s", event.AuthorEmail),
			http.StatusBadRequest, "INVALID_EMAIL_FORMAT", nil))
		return
	}

	result, failure := h.service.Process(ctx, service.NotificationParams{
		RequestID: requestID,
		Event:     event,
	})
	if failure != nil {
		status, resp := mapFailure(failure, event)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, envelope.Success(dto.BuildFailureResponse{
		RequestID:       result.RequestID,
		Repo:            result.Repo,
		CommitSHA:       result.CommitSHA,
		SlackUserID:     result.SlackUserID,
		AnalysisPreview: result.AnalysisPreview,
	}, "Build failure notification sent successfully"))
}

// mapFailure is the single place pipeline failures become HTTP responses.
func mapFailure(failure *domain.Failure, event domain.BuildFailureEvent) (int, envelope.ErrorResponse) {
	switch failure.Stage {
	case domain.StageAnalysis:
		return http.StatusServiceUnavailable, envelope.Error(
			fmt.Sprintf("Failed to analyze build failure: %s", failure.Message),
			http.StatusServiceUnavailable, "OLLAMA_SERVICE_ERROR",
			map[string]any{"service": "inference", "error": failure.Message})

	case domain.StageLookup:
		if failure.Kind == domain.KindNotFound {
			return http.StatusNotFound, envelope.Error(
				failure.Message,
				http.StatusNotFound, "SLACK_USER_NOT_FOUND",
				map[string]any{"email": event.AuthorEmail})
		}
		return http.StatusServiceUnavailable, envelope.Error(
			fmt.Sprintf("Failed to lookup Slack user: %s", failure.Message),
			http.StatusServiceUnavailable, "SLACK_SERVICE_ERROR",
			map[string]any{"service": "chat-lookup", "error": failure.Message})

	case domain.StageNotify:
		return http.StatusServiceUnavailable, envelope.Error(
			fmt.Sprintf("Failed to send Slack notification: %s", failure.Message),
			http.StatusServiceUnavailable, "SLACK_SERVICE_ERROR",
			map[string]any{"service": "chat-notify", "error": failure.Message})
	}

	return http.StatusInternalServerError, envelope.Error(
		"An internal server error occurred",
		http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", nil)
}
