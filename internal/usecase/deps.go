package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

// Option configures the collaborators shared by the diet use cases.
type Option func(*deps)

// WithNotifier publishes lifecycle events after each successful save.
func WithNotifier(n ports.Notifier) Option {
	return func(d *deps) { d.notifier = n }
}

func WithMetrics(m ports.MetricsRecorder) Option {
	return func(d *deps) {
		if m != nil {
			d.metrics = m
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *deps) {
		if l != nil {
			d.log = l
		}
	}
}

// WithNow overrides the clock used for diets and events (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(d *deps) {
		if now != nil {
			d.now = now
		}
	}
}

type deps struct {
	repo     ports.DietRepository
	notifier ports.Notifier
	metrics  ports.MetricsRecorder
	log      *slog.Logger
	now      func() time.Time
}

func newDeps(repo ports.DietRepository, opts []Option) deps {
	d := deps{
		repo:    repo,
		metrics: ports.NopMetrics{},
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// load fetches a snapshot and rebuilds the live diet around it.
func (d deps) load(ctx context.Context, id string) (domain.Diet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := d.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.Restore(snap, domain.WithNow(d.now))
}

func (d deps) save(ctx context.Context, diet domain.Diet) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	snap := diet.Snapshot()
	if err := d.repo.Save(ctx, snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// publish never fails the caller: the mutation is already persisted.
func (d deps) publish(ctx context.Context, kind domain.EventKind, diet domain.Diet) {
	if d.notifier == nil {
		return
	}
	report, err := d.notifier.Notify(ctx, domain.NewEvent(kind, diet, d.now()))
	d.metrics.NotificationsDispatched(report)
	if err != nil {
		d.log.Warn("notify.failed", "event", string(kind), "diet_id", diet.ID(), "err", err)
		return
	}
	if report.Failed > 0 {
		d.log.Warn("notify.partial",
			"event", string(kind),
			"diet_id", diet.ID(),
			"total", report.Total,
			"failed", report.Failed,
		)
		return
	}
	d.log.Debug("notify.ok", "event", string(kind), "diet_id", diet.ID(), "total", report.Total)
}
