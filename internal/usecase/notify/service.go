// Package notify fans diet events out to named channels, each with its own
// delivery strategy and recipients.
package notify

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type channel struct {
	strategy   ports.NotificationStrategy
	recipients []string
}

// Service is a channel registry safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	channels map[string]channel
	log      *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		channels: map[string]channel{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Notifier = (*Service)(nil)

// Register adds a channel or replaces the one with the same name.
func (s *Service) Register(name string, strategy ports.NotificationStrategy, recipients []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &domain.DomainError{Kind: domain.KindValidation, Msg: "channel name must not be empty"}
	}
	if strategy == nil {
		return &domain.DomainError{Kind: domain.KindValidation, Msg: "strategy is required"}
	}
	if len(recipients) == 0 {
		return &domain.DomainError{Kind: domain.KindValidation, Msg: "at least one recipient is required"}
	}
	rs := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			return &domain.DomainError{Kind: domain.KindValidation, Msg: "invalid recipient"}
		}
		rs = append(rs, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[name] = channel{strategy: strategy, recipients: rs}
	return nil
}

func (s *Service) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[name]; !ok {
		return false
	}
	delete(s.channels, name)
	return true
}

// Channels returns the registered channel names, sorted.
func (s *Service) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.channels))
	for name := range s.channels {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Recipients returns a copy of the channel's recipients, or nil if unknown.
func (s *Service) Recipients(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.channels[name]
	if !ok {
		return nil
	}
	return append([]string(nil), ch.recipients...)
}

func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}

// Notify sends ev to every recipient of every channel. A strategy error is
// counted as a failure and the dispatch goes on; only a cancelled context
// stops it early.
func (s *Service) Notify(ctx context.Context, ev domain.Event) (domain.DispatchReport, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	chans := make([]channel, len(names))
	for i, name := range names {
		chans[i] = s.channels[name]
	}
	s.mu.RUnlock()

	msg := ev.Message()
	var report domain.DispatchReport
	for i, ch := range chans {
		for _, r := range ch.recipients {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Total++
			if err := ch.strategy.Send(ctx, msg, r); err != nil {
				report.Failed++
				s.log.Warn("notify.send.failed",
					"channel", names[i],
					"recipient", r,
					"event", string(ev.Kind),
					"diet_id", ev.DietID,
					"err", err,
				)
				continue
			}
			report.Succeeded++
		}
	}
	return report, nil
}
