// Package llm wraps the Ollama native API behind the analyzer port: one
// non-streaming generate call per build failure, plus the listing probe the
// health surface uses.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/DevOps-In-Motion/buildalert/core/config"
	"github.com/DevOps-In-Motion/buildalert/internal/domain"
	"github.com/DevOps-In-Motion/buildalert/internal/remote"
)

// maxLogChars caps how much raw build log goes into the prompt. The cut is
// exact, not word-aligned, and is never reported to the caller.
const maxLogChars = 5000

const probeTimeout = 5 * time.Second

type Client struct {
	api     *api.Client
	baseURL string
	model   string
}

func NewClient(cfg config.OllamaConfig) (*Client, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Client{
		api:     api.NewClient(base, httpClient),
		baseURL: cfg.URL,
		model:   cfg.Model,
	}, nil
}

func (c *Client) URL() string   { return c.baseURL }
func (c *Client) Model() string { return c.model }

// Analyze asks the model to explain a build failure. Returns the analysis
// text or a typed failure with stage analysis.
func (c *Client) Analyze(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
	if runes := []rune(logs); len(runes) > maxLogChars {
		logs = string(runes[:maxLogChars])
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: buildPrompt(repo, errText, logs),
		Stream: &stream,
	}

	var analysis strings.Builder
	err := c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
		analysis.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.StatusCode == http.StatusNotFound {
				return "", domain.NewFailure(domain.StageAnalysis, domain.KindModelNotFound,
					fmt.Sprintf("Ollama model %q not found", c.model))
			}
			return "", domain.NewFailure(domain.StageAnalysis, domain.KindRequestFailed,
				fmt.Sprintf("Ollama API error (HTTP %d): %s", statusErr.StatusCode, statusErr.ErrorMessage))
		}
		return "", remote.Classify(domain.StageAnalysis, "Ollama", err)
	}

	if strings.TrimSpace(analysis.String()) == "" {
		return "", domain.NewFailure(domain.StageAnalysis, domain.KindEmptyResponse,
			"Ollama returned empty response")
	}

	return analysis.String(), nil
}

// ProbeStatus is the per-dependency health vocabulary reported by /health.
type ProbeStatus string

const (
	ProbeHealthy     ProbeStatus = "healthy"
	ProbeUnhealthy   ProbeStatus = "unhealthy"
	ProbeUnreachable ProbeStatus = "unreachable"
	ProbeError       ProbeStatus = "error"
)

type ProbeResult struct {
	Status ProbeStatus
	Detail string
}

func (r ProbeResult) Healthy() bool { return r.Status == ProbeHealthy }

// Probe hits the model listing endpoint with a short bounded timeout,
// independent of the analyze budget.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := c.api.List(ctx); err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return ProbeResult{
				Status: ProbeUnhealthy,
				Detail: fmt.Sprintf("HTTP %d", statusErr.StatusCode),
			}
		}
		switch remote.Classify(domain.StageAnalysis, "Ollama", err).Kind {
		case domain.KindTimeout:
			return ProbeResult{Status: ProbeUnreachable, Detail: "Connection timeout"}
		case domain.KindUnreachable:
			return ProbeResult{Status: ProbeUnreachable, Detail: "Connection refused"}
		default:
			return ProbeResult{Status: ProbeError, Detail: err.Error()}
		}
	}

	return ProbeResult{Status: ProbeHealthy}
}

func buildPrompt(repo, errText, logs string) string {
	return fmt.Sprintf(`Analyze this build failure. Be concise.

Repo: %s
Error: %s

Logs:
%s

Give:
1. Root cause (1 sentence)
2. Fix recommendation
3. Known issue? (if applicable)`, repo, errText, logs)
}
