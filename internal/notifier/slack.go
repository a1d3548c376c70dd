// Package notifier delivers rendered reports to chat services.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrMissingChannel is returned when a message has no destination.
var ErrMissingChannel = errors.New("no slack channel given")

// SlackConfig holds the settings of the Slack sender.
type SlackConfig struct {
	Token string
	// APIURL overrides the Slack Web API base, e.g. for tests. It must end with a slash.
	APIURL string
	// Interval is the minimum spacing between two posts. Zero means one second.
	Interval time.Duration
}

// SlackNotifier posts report attachments to Slack.
type SlackNotifier struct {
	client  *slack.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewSlackNotifier creates a new SlackNotifier instance.
func NewSlackNotifier(cfg SlackConfig, logger *zap.Logger) *SlackNotifier {
	var opts []slack.Option
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return &SlackNotifier{
		client:  slack.New(cfg.Token, opts...),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

// Send waits for the rate limiter and posts msg. It does not retry.
func (n *SlackNotifier) Send(ctx context.Context, msg domain.Message) error {
	if msg.Channel == "" {
		return ErrMissingChannel
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for slack rate limiter: %w", err)
	}

	attachments := make([]slack.Attachment, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, toSlackAttachment(a))
	}

	channel, ts, err := n.client.PostMessageContext(ctx, msg.Channel,
		slack.MsgOptionAttachments(attachments...),
		slack.MsgOptionAsUser(msg.AsUser),
	)
	if err != nil {
		return fmt.Errorf("posting to slack channel %s: %w", msg.Channel, err)
	}
	n.logger.Debug("slack message posted", zap.String("channel", channel), zap.String("ts", ts))
	return nil
}

func toSlackAttachment(a domain.Attachment) slack.Attachment {
	fields := make([]slack.AttachmentField, 0, len(a.Fields))
	for _, f := range a.Fields {
		fields = append(fields, slack.AttachmentField{Title: f.Title, Value: f.Value, Short: f.Short})
	}
	return slack.Attachment{
		Fallback:   a.Fallback,
		Color:      a.Color,
		AuthorName: a.AuthorName,
		AuthorLink: a.AuthorLink,
		AuthorIcon: a.AuthorIcon,
		Title:      a.Title,
		Text:       a.Text,
		Fields:     fields,
		Footer:     a.Footer,
		FooterIcon: a.FooterIcon,
		Ts:         json.Number(strconv.FormatInt(a.Ts, 10)),
	}
}
