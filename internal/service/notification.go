package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DevOps-In-Motion/buildalert/common/logger"
	"github.com/DevOps-In-Motion/buildalert/internal/domain"
)

// maxAnalysisLogChars bounds how much raw log text the analyzer port ever
// sees. Truncation happens here so every analyzer implementation gets the
// same bounded input.
const maxAnalysisLogChars = 5000

// analysisPreviewChars bounds the analysis excerpt echoed back in the
// response payload and logs.
const analysisPreviewChars = 100

// Analyzer produces a natural-language analysis of a build failure.
type Analyzer interface {
	Analyze(ctx context.Context, repo, errText, logs string) (string, *domain.Failure)
}

// UserResolver maps a commit author email to a chat user ID.
type UserResolver interface {
	ResolveUser(ctx context.Context, email string) (string, *domain.Failure)
}

// Notifier delivers the rendered notification to a chat user.
type Notifier interface {
	Notify(ctx context.Context, userID, text string) *domain.Failure
}

type NotificationParams struct {
	RequestID string
	Event     domain.BuildFailureEvent
}

type NotificationResult struct {
	RequestID       string
	Repo            string
	CommitSHA       string
	SlackUserID     string
	AnalysisPreview string
}

type NotificationService interface {
	Process(ctx context.Context, params NotificationParams) (*NotificationResult, *domain.Failure)
}

type notificationService struct {
	analyzer Analyzer
	resolver UserResolver
	notifier Notifier
	logger   *slog.Logger
}

func NewNotificationService(analyzer Analyzer, resolver UserResolver, notifier Notifier, log *slog.Logger) NotificationService {
	if log == nil {
		log = slog.Default()
	}
	return &notificationService{
		analyzer: analyzer,
		resolver: resolver,
		notifier: notifier,
		logger:   log,
	}
}

// Process runs the full pipeline for one validated build failure event:
// analyze, resolve the author, notify. It fails fast on the first stage that
// returns a failure and never retries.
func (s *notificationService) Process(ctx context.Context, params NotificationParams) (*NotificationResult, *domain.Failure) {
	event := params.Event
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RequestID: params.RequestID,
		Repo:      event.Repo,
	})

	ctx = logger.WithLogFields(ctx, logger.LogFields{Stage: "analyze"})
	s.logger.InfoContext(ctx, "analyzing build failure",
		"commit_sha", event.ShortSHA(),
		"log_bytes", len(event.Logs),
	)

	logs := event.Logs
	if runes := []rune(logs); len(runes) > maxAnalysisLogChars {
		logs = string(runes[:maxAnalysisLogChars])
	}

	analysis, failure := s.analyzer.Analyze(ctx, event.Repo, event.Error, logs)
	if failure != nil {
		s.logger.ErrorContext(ctx, "analysis failed", "kind", failure.Kind, "error", failure.Message)
		return nil, failure
	}
	s.logger.InfoContext(ctx, "analysis complete",
		"analysis_preview", logger.Truncate(analysis, analysisPreviewChars),
	)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Stage: "resolve"})
	userID, failure := s.resolver.ResolveUser(ctx, event.AuthorEmail)
	if failure != nil {
		s.logger.ErrorContext(ctx, "user lookup failed", "kind", failure.Kind, "error", failure.Message)
		return nil, failure
	}
	s.logger.InfoContext(ctx, "resolved commit author", "slack_user_id", userID)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Stage: "notify"})
	if failure := s.notifier.Notify(ctx, userID, renderNotification(event, analysis)); failure != nil {
		s.logger.ErrorContext(ctx, "notification failed", "kind", failure.Kind, "error", failure.Message)
		return nil, failure
	}
	s.logger.InfoContext(ctx, "notification delivered", "slack_user_id", userID)

	return &NotificationResult{
		RequestID:       params.RequestID,
		Repo:            event.Repo,
		CommitSHA:       event.CommitSHA,
		SlackUserID:     userID,
		AnalysisPreview: logger.Truncate(analysis, analysisPreviewChars),
	}, nil
}

func renderNotification(event domain.BuildFailureEvent, analysis string) string {
	return fmt.Sprintf("🚨 *Build Failed* - `%s`\n\n*Commit:* `%s`\n\n*Analysis:*\n%s\n\n<https://github.com/%s/commit/%s|View Commit>",
		event.Repo, event.ShortSHA(), analysis, event.Repo, event.CommitSHA)
}
