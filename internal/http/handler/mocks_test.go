package handler_test

import (
	"context"

	"github.com/DevOps-In-Motion/buildalert/internal/domain"
	"github.com/DevOps-In-Motion/buildalert/internal/llm"
	"github.com/DevOps-In-Motion/buildalert/internal/service"
)

type mockNotificationService struct {
	processFn      func(ctx context.Context, params service.NotificationParams) (*service.NotificationResult, *domain.Failure)
	capturedParams service.NotificationParams
	calls          int
}

func (m *mockNotificationService) Process(ctx context.Context, params service.NotificationParams) (*service.NotificationResult, *domain.Failure) {
	m.calls++
	m.capturedParams = params
	if m.processFn != nil {
		return m.processFn(ctx, params)
	}
	return &service.NotificationResult{
		RequestID:       params.RequestID,
		Repo:            params.Event.Repo,
		CommitSHA:       params.Event.CommitSHA,
		SlackUserID:     "U0000001",
		AnalysisPreview: "looks fine",
	}, nil
}

type mockProber struct {
	probeFn func(ctx context.Context) llm.ProbeResult
	url     string
	model   string
}

func (m *mockProber) Probe(ctx context.Context) llm.ProbeResult {
	if m.probeFn != nil {
		return m.probeFn(ctx)
	}
	return llm.ProbeResult{Status: llm.ProbeHealthy}
}

func (m *mockProber) URL() string   { return m.url }
func (m *mockProber) Model() string { return m.model }
