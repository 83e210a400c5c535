// Package notifier holds the delivery strategies behind notification
// channels and builds the channel registry from workspace config.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/app/template"
	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/httpclient"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// LogStrategy writes each delivery as a structured log record.
type LogStrategy struct {
	Channel  string
	Template string
	Log      *slog.Logger
}

var _ ports.NotificationStrategy = LogStrategy{}

func (s LogStrategy) Send(ctx context.Context, message, recipient string) error {
	text, err := render(s.Template, s.Channel, message, recipient)
	if err != nil {
		return err
	}
	l := s.Log
	if l == nil {
		l = slog.Default()
	}
	l.InfoContext(ctx, "notify.deliver",
		"channel", s.Channel,
		"recipient", recipient,
		"text", text,
	)
	return nil
}

// WebhookPayload is the JSON body posted to webhook channels.
type WebhookPayload struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// WebhookStrategy posts one JSON payload per recipient. Any non-2xx reply
// counts as a failed delivery.
type WebhookStrategy struct {
	Channel  string
	URL      string
	Template string
	Exec     *httpclient.Executor
	Now      func() time.Time
}

var _ ports.NotificationStrategy = WebhookStrategy{}

func (s WebhookStrategy) Send(ctx context.Context, message, recipient string) error {
	text, err := render(s.Template, s.Channel, message, recipient)
	if err != nil {
		return err
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	exec := s.Exec
	if exec == nil {
		exec = httpclient.NewExecutor()
	}
	resp, err := exec.PostJSON(ctx, s.URL, WebhookPayload{
		Channel:   s.Channel,
		Recipient: recipient,
		Message:   text,
		SentAt:    now().UTC(),
	}, nil)
	if err != nil {
		if domain.IsKind(err, domain.KindInvalidConfig) {
			return err
		}
		return &domain.OpError{Op: "notifier.webhook", Kind: domain.KindExecution, Path: s.URL, Err: err}
	}
	if !resp.OK() {
		return &domain.OpError{
			Op:   "notifier.webhook",
			Kind: domain.KindExecution,
			Path: s.URL,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.Status, strings.TrimSpace(string(resp.Body))),
		}
	}
	return nil
}

func render(tmpl, channel, message, recipient string) (string, error) {
	if tmpl == "" {
		return message, nil
	}
	return template.RenderString(tmpl, map[string]string{
		"channel":   channel,
		"message":   message,
		"recipient": recipient,
	})
}
