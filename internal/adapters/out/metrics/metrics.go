// Package metrics publishes lifecycle and transport metrics to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"tracker/internal/core/domain/model/parcel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements ports.LifecycleMetrics and records HTTP request latency.
type Metrics struct {
	// Committed lifecycle operations by operation label
	PackageMutations *prometheus.CounterVec

	// Appended status records by status
	StatusRecords *prometheus.CounterVec

	// Live packages by status, refreshed by the gauge job
	PackagesByStatus *prometheus.GaugeVec

	// HTTP request latency by method, route and status code
	RequestDuration *prometheus.HistogramVec
}

// New registers every metric with registerer. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		PackageMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_package_mutations_total",
			Help: "Total committed package lifecycle operations by operation",
		}, []string{"operation"}),

		StatusRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_status_records_total",
			Help: "Total status records appended by status",
		}, []string{"status"}),

		PackagesByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracker_packages",
			Help: "Number of live packages by status",
		}, []string{"status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, route and status code",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "code"}),
	}
}

func (m *Metrics) PackageMutated(operation string) {
	if m != nil {
		m.PackageMutations.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) StatusRecorded(status parcel.Status) {
	if m != nil {
		m.StatusRecords.WithLabelValues(status.String()).Inc()
	}
}

// SetPackagesByStatus replaces the gauge values; statuses missing from counts are set to zero.
func (m *Metrics) SetPackagesByStatus(counts map[parcel.Status]int) {
	if m == nil {
		return
	}
	for _, status := range parcel.Statuses() {
		m.PackagesByStatus.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
	}
}
