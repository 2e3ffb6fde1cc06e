package domain

// MetricsRecorder receives domain counters. Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	EventCreated()
	EventDeleted()
	ResponseSubmitted(created bool)
	NotificationSent(kind string, err error)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) EventCreated() {}
func (NopMetrics) EventDeleted() {}
func (NopMetrics) ResponseSubmitted(bool) {}
func (NopMetrics) NotificationSent(string, error) {}
