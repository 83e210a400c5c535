package notifier

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/httpclient"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase/notify"
)

type buildOptions struct {
	log  *slog.Logger
	exec *httpclient.Executor
	now  func() time.Time
}

type Option func(*buildOptions)

func WithLogger(l *slog.Logger) Option {
	return func(o *buildOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithExecutor shares one HTTP executor across webhook channels.
func WithExecutor(e *httpclient.Executor) Option {
	return func(o *buildOptions) {
		if e != nil {
			o.exec = e
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(o *buildOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Build registers one channel per config entry on a fresh notify.Service.
func Build(cfg domain.NotificationsConfig, opts ...Option) (*notify.Service, error) {
	o := buildOptions{log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	svc := notify.NewService(notify.WithLogger(o.log))
	for _, c := range cfg.Channels {
		var err error
		switch c.Kind {
		case domain.ChannelLog:
			err = svc.Register(c.Name, LogStrategy{
				Channel:  c.Name,
				Template: c.Template,
				Log:      o.log,
			}, c.Recipients)
		case domain.ChannelWebhook:
			if o.exec == nil {
				o.exec = httpclient.NewExecutor()
			}
			err = svc.Register(c.Name, WebhookStrategy{
				Channel:  c.Name,
				URL:      c.URL,
				Template: c.Template,
				Exec:     o.exec,
				Now:      o.now,
			}, c.Recipients)
		default:
			err = &domain.DomainError{
				Kind: domain.KindInvalidConfig,
				Msg:  fmt.Sprintf("channel %q: unsupported kind %q", c.Name, c.Kind),
			}
		}
		if err != nil {
			return nil, &domain.OpError{Op: "notifier.build", Kind: domain.KindInvalidConfig, Path: c.Name, Err: err}
		}
	}
	return svc, nil
}
