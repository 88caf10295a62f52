package service_test

import (
	"context"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DevOps-In-Motion/buildalert/internal/domain"
	"github.com/DevOps-In-Motion/buildalert/internal/service"
)

var _ = Describe("NotificationService", func() {
	var (
		svc      service.NotificationService
		analyzer *mockAnalyzer
		resolver *mockUserResolver
		notifier *mockNotifier
		ctx      context.Context
		params   service.NotificationParams
	)

	BeforeEach(func() {
		ctx = context.Background()
		analyzer = &mockAnalyzer{}
		resolver = &mockUserResolver{}
		notifier = &mockNotifier{}
		svc = service.NewNotificationService(analyzer, resolver, notifier, nil)

		params = service.NotificationParams{
			RequestID: "1234567890",
			Event: domain.BuildFailureEvent{
				CommitSHA:   "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
				AuthorEmail: "dev@acme.io",
				Repo:        "acme/api",
				Logs:        "npm ERR! missing react",
				Error:       "exit code 1",
			},
		}
	})

	Describe("Process", func() {
		Context("when every stage succeeds", func() {
			BeforeEach(func() {
				analyzer.analyzeFn = func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
					return "1. Root cause: missing dependency", nil
				}
				resolver.resolveFn = func(ctx context.Context, email string) (string, *domain.Failure) {
					return "U0424242", nil
				}
			})

			It("returns the result with the resolved user and analysis preview", func() {
				result, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(result).NotTo(BeNil())
				Expect(result.RequestID).To(Equal("1234567890"))
				Expect(result.Repo).To(Equal("acme/api"))
				Expect(result.CommitSHA).To(Equal(params.Event.CommitSHA))
				Expect(result.SlackUserID).To(Equal("U0424242"))
				Expect(result.AnalysisPreview).To(Equal("1. Root cause: missing dependency"))
			})

			It("resolves the commit author's email", func() {
				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(resolver.capturedEmail).To(Equal("dev@acme.io"))
			})

			It("renders the notification with repo, short SHA, analysis, and commit link", func() {
				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(notifier.capturedUserID).To(Equal("U0424242"))
				Expect(notifier.capturedText).To(ContainSubstring("*Build Failed* - `acme/api`"))
				Expect(notifier.capturedText).To(ContainSubstring("*Commit:* `a1b2c3d`"))
				Expect(notifier.capturedText).To(ContainSubstring("1. Root cause: missing dependency"))
				Expect(notifier.capturedText).To(ContainSubstring(
					"<https://github.com/acme/api/commit/a1b2c3d4e5f60718293a4b5c6d7e8f9012345678|View Commit>"))
			})
		})

		Context("with logs longer than the analysis input cap", func() {
			It("passes exactly the first 5000 characters to the analyzer", func() {
				params.Event.Logs = strings.Repeat("x", 6000)

				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(analyzer.capturedLogs).To(HaveLen(5000))
				Expect(analyzer.capturedLogs).To(Equal(strings.Repeat("x", 5000)))
			})

			It("passes short logs through untouched", func() {
				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(analyzer.capturedLogs).To(Equal("npm ERR! missing react"))
			})

			It("counts characters, not bytes", func() {
				// 3000 two-byte characters: under the cap, over it in bytes.
				params.Event.Logs = strings.Repeat("é", 3000)

				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(analyzer.capturedLogs).To(Equal(params.Event.Logs))
			})

			It("cuts multibyte logs at exactly 5000 characters", func() {
				params.Event.Logs = strings.Repeat("é", 6000)

				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				runes := []rune(analyzer.capturedLogs)
				Expect(runes).To(HaveLen(5000))
				Expect(analyzer.capturedLogs).To(Equal(strings.Repeat("é", 5000)))
			})
		})

		Context("with an analysis longer than the preview cap", func() {
			It("truncates the preview to 100 characters plus an ellipsis", func() {
				long := strings.Repeat("a", 150)
				analyzer.analyzeFn = func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
					return long, nil
				}

				result, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(result.AnalysisPreview).To(Equal(strings.Repeat("a", 100) + "..."))
			})

			It("still sends the full analysis to the notifier", func() {
				long := strings.Repeat("a", 150)
				analyzer.analyzeFn = func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
					return long, nil
				}

				_, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(notifier.capturedText).To(ContainSubstring(long))
			})

			It("keeps the preview valid UTF-8 for multibyte analyses", func() {
				analyzer.analyzeFn = func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
					return strings.Repeat("é", 150), nil
				}

				result, failure := svc.Process(ctx, params)

				Expect(failure).To(BeNil())
				Expect(result.AnalysisPreview).To(Equal(strings.Repeat("é", 100) + "..."))
				Expect(utf8.ValidString(result.AnalysisPreview)).To(BeTrue())
			})
		})

		Context("when analysis fails", func() {
			BeforeEach(func() {
				analyzer.analyzeFn = func(ctx context.Context, repo, errText, logs string) (string, *domain.Failure) {
					return "", domain.NewFailure(domain.StageAnalysis, domain.KindTimeout, "Ollama API request timeout")
				}
			})

			It("returns the failure and never calls lookup or notify", func() {
				result, failure := svc.Process(ctx, params)

				Expect(result).To(BeNil())
				Expect(failure).NotTo(BeNil())
				Expect(failure.Stage).To(Equal(domain.StageAnalysis))
				Expect(failure.Kind).To(Equal(domain.KindTimeout))
				Expect(resolver.calls).To(BeZero())
				Expect(notifier.calls).To(BeZero())
			})
		})

		Context("when the user lookup fails", func() {
			BeforeEach(func() {
				resolver.resolveFn = func(ctx context.Context, email string) (string, *domain.Failure) {
					return "", domain.NewFailure(domain.StageLookup, domain.KindNotFound,
						"No Slack user found for email: dev@acme.io")
				}
			})

			It("returns the failure and never calls notify", func() {
				result, failure := svc.Process(ctx, params)

				Expect(result).To(BeNil())
				Expect(failure.Stage).To(Equal(domain.StageLookup))
				Expect(failure.Kind).To(Equal(domain.KindNotFound))
				Expect(analyzer.calls).To(Equal(1))
				Expect(notifier.calls).To(BeZero())
			})
		})

		Context("when notification delivery fails", func() {
			BeforeEach(func() {
				notifier.notifyFn = func(ctx context.Context, userID, text string) *domain.Failure {
					return domain.NewFailure(domain.StageNotify, domain.KindProviderError,
						"Slack API error: channel_not_found")
				}
			})

			It("returns the notify-stage failure", func() {
				result, failure := svc.Process(ctx, params)

				Expect(result).To(BeNil())
				Expect(failure.Stage).To(Equal(domain.StageNotify))
				Expect(failure.Kind).To(Equal(domain.KindProviderError))
			})
		})
	})
})
