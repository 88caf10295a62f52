package service_test

import (
	"context"

	"github.com/DevOps-In-Motion/buildalert/internal/domain"
)

type mockAnalyzer struct {
	analyzeFn    func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure)
	capturedLogs string
	calls        int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
	m.calls++
	m.capturedLogs = logs
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, repo, errText, logs)
	}
	return "looks like a flaky test", nil
}

type mockUserResolver struct {
	resolveFn     func(ctx context.Context, email string) (string, *domain.Failure)
	capturedEmail string
	calls         int
}

func (m *mockUserResolver) ResolveUser(ctx context.Context, email string) (string, *domain.Failure) {
	m.calls++
	m.capturedEmail = email
	if m.resolveFn != nil {
		return m.resolveFn(ctx, email)
	}
	return "U0000001", nil
}

type mockNotifier struct {
	notifyFn       func(ctx context.Context, userID, text string) *domain.Failure
	capturedUserID string
	capturedText   string
	calls          int
}

func (m *mockNotifier) Notify(ctx context.Context, userID, text string) *domain.Failure {
	m.calls++
	m.capturedUserID = userID
	m.capturedText = text
	if m.notifyFn != nil {
		return m.notifyFn(ctx, userID, text)
	}
	return nil
}
