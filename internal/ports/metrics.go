package ports

import "github.com/sistema-nutricional-hospitalar/snh/internal/domain"

// MetricsRecorder observes use case outcomes.
type MetricsRecorder interface {
	DietPrescribed(t domain.DietType)
	DietEnded(t domain.DietType)
	RestrictionChanged(op string)
	ItemAdded(t domain.DietType)
	NotificationsDispatched(r domain.DispatchReport)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) DietPrescribed(domain.DietType)                {}
func (NopMetrics) DietEnded(domain.DietType)                     {}
func (NopMetrics) RestrictionChanged(string)                     {}
func (NopMetrics) ItemAdded(domain.DietType)                     {}
func (NopMetrics) NotificationsDispatched(domain.DispatchReport) {}
