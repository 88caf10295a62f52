package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevOps-In-Motion/buildalert/internal/http/dto"
	"github.com/DevOps-In-Motion/buildalert/internal/http/envelope"
	"github.com/DevOps-In-Motion/buildalert/internal/llm"
)

// InferenceProber is the slice of the inference client the health surface
// needs.
type InferenceProber interface {
	Probe(ctx context.Context) llm.ProbeResult
	URL() string
	Model() string
}

type HealthHandler struct {
	prober          InferenceProber
	slackConfigured bool
}

func NewHealthHandler(prober InferenceProber, slackConfigured bool) *HealthHandler {
	return &HealthHandler{prober: prober, slackConfigured: slackConfigured}
}

// Health handles GET /health. Overall status is healthy only when the
// inference probe succeeds; Slack contributes configuration presence, never
// a network probe.
func (h *HealthHandler) Health(c *gin.Context) {
	probe := h.prober.Probe(c.Request.Context())

	inference := dto.InferenceHealth{
		Status: string(probe.Status),
		URL:    h.prober.URL(),
	}
	if probe.Healthy() {
		inference.Model = h.prober.Model()
	} else {
		inference.Error = probe.Detail
	}

	slack := dto.SlackHealth{Status: "configured"}
	if !h.slackConfigured {
		slack.Status = "not_configured"
		slack.Warning = "SLACK_BOT_TOKEN not set"
	}

	resp := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: envelope.Timestamp(),
		Services: dto.HealthServices{
			Inference: inference,
			Slack:     slack,
		},
	}

	if !probe.Healthy() {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Ready handles GET /ready. Stricter than Health: a missing Slack credential
// fails readiness before the inference backend is probed at all.
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.slackConfigured {
		c.JSON(http.StatusServiceUnavailable, dto.ReadyResponse{
			Ready:  false,
			Reason: "SLACK_BOT_TOKEN not configured",
		})
		return
	}

	probe := h.prober.Probe(c.Request.Context())
	switch probe.Status {
	case llm.ProbeHealthy:
		c.JSON(http.StatusOK, dto.ReadyResponse{
			Ready:     true,
			Timestamp: envelope.Timestamp(),
		})
	case llm.ProbeUnhealthy:
		c.JSON(http.StatusServiceUnavailable, dto.ReadyResponse{
			Ready:  false,
			Reason: fmt.Sprintf("Ollama service unhealthy (%s)", probe.Detail),
		})
	default:
		c.JSON(http.StatusServiceUnavailable, dto.ReadyResponse{
			Ready:  false,
			Reason: fmt.Sprintf("Ollama service unreachable: %s", probe.Detail),
		})
	}
}
