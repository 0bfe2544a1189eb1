package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the booking cache and the remote API.
type Metrics struct {
	BookingsStored       prometheus.Counter
	StorageWriteFailures prometheus.Counter
	StorageLoadFailures  prometheus.Counter
	CachedBookings       prometheus.Gauge
	RemoteRequests       *prometheus.CounterVec
	RemoteDuration       *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gnawa_bookings_stored_total",
			Help: "Total number of bookings persisted to the local cache",
		}),

		StorageWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gnawa_booking_cache_write_failures_total",
			Help: "Total number of failed durable writes of the booking cache",
		}),

		StorageLoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gnawa_booking_cache_load_failures_total",
			Help: "Total number of booking cache loads that fell back to in-memory state",
		}),

		CachedBookings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gnawa_booking_cache_size",
			Help: "Number of bookings currently held in the local cache",
		}),

		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gnawa_remote_requests_total",
			Help: "Requests sent to the ticketing backend by operation and outcome",
		}, []string{"operation", "outcome"}),

		RemoteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gnawa_remote_request_duration_seconds",
			Help:    "Duration of requests to the ticketing backend",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
