// Package chat adapts the Slack Web API for the two operations the pipeline
// needs: resolving a commit author's email to a Slack user ID, and sending the
// analysis DM. Both degrade to typed failures when no bot token is configured.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/DevOps-In-Motion/buildalert/core/config"
	"github.com/DevOps-In-Motion/buildalert/internal/domain"
	"github.com/DevOps-In-Motion/buildalert/internal/remote"
)

type SlackClient struct {
	api        *slack.Client
	configured bool
}

func NewSlackClient(cfg config.SlackConfig, timeout time.Duration) *SlackClient {
	if !cfg.Configured() {
		return &SlackClient{configured: false}
	}

	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.APIURL != "" {
		// The Slack client joins method names onto the base URL verbatim.
		apiURL := cfg.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}

	return &SlackClient{
		api:        slack.New(cfg.BotToken, opts...),
		configured: true,
	}
}

func (c *SlackClient) Configured() bool { return c.configured }

// ResolveUser maps a commit author email to a Slack user ID.
func (c *SlackClient) ResolveUser(ctx context.Context, email string) (string, *domain.Failure) {
	if !c.configured {
		return "", domain.NewFailure(domain.StageLookup, domain.KindNotConfigured,
			"Slack bot token not configured")
	}
	if !domain.ValidEmail(email) {
		return "", domain.NewFailure(domain.StageLookup, domain.KindInvalidEmail,
			fmt.Sprintf("Invalid email format: %s", email))
	}

	user, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		var slackErr slack.SlackErrorResponse
		if errors.As(err, &slackErr) {
			if slackErr.Err == "users_not_found" {
				return "", domain.NewFailure(domain.StageLookup, domain.KindNotFound,
					fmt.Sprintf("No Slack user found for email: %s", email))
			}
			return "", domain.NewFailure(domain.StageLookup, domain.KindRequestFailed,
				fmt.Sprintf("Slack API error: %s", slackErr.Err))
		}
		return "", remote.Classify(domain.StageLookup, "Slack", err)
	}

	if user == nil || user.ID == "" {
		return "", domain.NewFailure(domain.StageLookup, domain.KindMalformedResponse,
			"Slack returned a user without an ID")
	}

	return user.ID, nil
}

// Notify DMs the rendered analysis to the resolved user. The text is sent as
// a single mrkdwn section block so Slack renders the commit link and code
// spans the message carries.
func (c *SlackClient) Notify(ctx context.Context, userID, text string) *domain.Failure {
	if !c.configured {
		return domain.NewFailure(domain.StageNotify, domain.KindNotConfigured,
			"Slack bot token not configured")
	}

	block := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil, nil,
	)

	_, _, err := c.api.PostMessageContext(ctx, userID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(block),
	)
	if err != nil {
		var slackErr slack.SlackErrorResponse
		if errors.As(err, &slackErr) {
			return domain.NewFailure(domain.StageNotify, domain.KindProviderError,
				fmt.Sprintf("Slack API error: %s", slackErr.Err))
		}
		return remote.Classify(domain.StageNotify, "Slack", err)
	}

	return nil
}
