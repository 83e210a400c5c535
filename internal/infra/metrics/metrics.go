// Package metrics exposes diet activity as Prometheus metrics on a private
// registry.
package metrics

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

const namespace = "snh"

// Recorder implements ports.MetricsRecorder with counters.
type Recorder struct {
	registry *prometheus.Registry

	prescribed    *prometheus.CounterVec
	ended         *prometheus.CounterVec
	restrictions  *prometheus.CounterVec
	itemsAdded    *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		prescribed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diets_prescribed_total",
			Help:      "Diets prescribed, by diet type.",
		}, []string{"type"}),
		ended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diets_ended_total",
			Help:      "Diets ended, by diet type.",
		}, []string{"type"}),
		restrictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restriction_changes_total",
			Help:      "Forbidden restriction changes, by operation.",
		}, []string{"op"}),
		itemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_items_added_total",
			Help:      "Menu items added to diets, by diet type.",
		}, []string{"type"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries, by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.prescribed, r.ended, r.restrictions, r.itemsAdded, r.notifications)
	return r
}

func (r *Recorder) DietPrescribed(t domain.DietType) { r.prescribed.WithLabelValues(string(t)).Inc() }
func (r *Recorder) DietEnded(t domain.DietType)      { r.ended.WithLabelValues(string(t)).Inc() }
func (r *Recorder) RestrictionChanged(op string)     { r.restrictions.WithLabelValues(op).Inc() }
func (r *Recorder) ItemAdded(t domain.DietType)      { r.itemsAdded.WithLabelValues(string(t)).Inc() }

func (r *Recorder) NotificationsDispatched(rep domain.DispatchReport) {
	r.notifications.WithLabelValues("succeeded").Add(float64(rep.Succeeded))
	r.notifications.WithLabelValues("failed").Add(float64(rep.Failed))
}

// WatchStore adds gauges computed from the repository on every gather.
func (r *Recorder) WatchStore(repo ports.DietRepository, log *slog.Logger) error {
	return r.registry.Register(newStoreCollector(repo, log))
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteText gathers once and writes the text exposition format to w.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return &domain.OpError{Op: "metrics.gather", Kind: domain.KindExecution, Err: err}
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return &domain.OpError{Op: "metrics.encode", Kind: domain.KindExecution, Err: err}
		}
	}
	return nil
}

// storeCollector reports current diet counts straight from storage.
type storeCollector struct {
	repo ports.DietRepository
	log  *slog.Logger

	diets *prometheus.Desc
	items *prometheus.Desc
}

func newStoreCollector(repo ports.DietRepository, log *slog.Logger) *storeCollector {
	if log == nil {
		log = slog.Default()
	}
	return &storeCollector{
		repo: repo,
		log:  log,
		diets: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "diets"),
			"Stored diets, by type and status.",
			[]string{"type", "status"}, nil,
		),
		items: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_menu_items"),
			"Menu items on active diets, by diet type.",
			[]string{"type"}, nil,
		),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.diets
	ch <- c.items
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snaps, err := c.repo.List(ctx, ports.ListFilter{})
	if err != nil {
		c.log.Warn("metrics.collect.failed", "err", err)
		ch <- prometheus.NewInvalidMetric(c.diets, err)
		return
	}

	type key struct{ typ, status string }
	diets := map[key]int{}
	items := map[domain.DietType]int{}
	for _, t := range domain.DietTypes() {
		diets[key{string(t), string(domain.StatusActive)}] = 0
		diets[key{string(t), string(domain.StatusEnded)}] = 0
		items[t] = 0
	}
	for _, s := range snaps {
		status := domain.StatusActive
		if !s.Active {
			status = domain.StatusEnded
		}
		diets[key{string(s.Type), string(status)}]++
		if s.Active {
			items[s.Type] += len(s.Items)
		}
	}

	for k, n := range diets {
		ch <- prometheus.MustNewConstMetric(c.diets, prometheus.GaugeValue, float64(n), k.typ, k.status)
	}
	for t, n := range items {
		ch <- prometheus.MustNewConstMetric(c.items, prometheus.GaugeValue, float64(n), string(t))
	}
}
