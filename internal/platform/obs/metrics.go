package obs

import (
	"errors"
	"time"
	"vehicle-proximity-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exported by the server. A nil *Metrics is valid and records nothing.
type Metrics struct {
	recordsLoaded prometheus.Gauge
	loadSeconds   prometheus.Gauge
	searchLatency *prometheus.HistogramVec
	noCandidate   prometheus.Counter
	rateLimited   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		recordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vehicle_index_records",
			Help: "Number of vehicle records in the loaded index",
		}),
		loadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vehicle_index_load_seconds",
			Help: "Wall time spent decoding and indexing the vehicle source",
		}),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nearest_search_duration_seconds",
			Help:    "Latency of nearest-neighbor searches",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		noCandidate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearest_no_candidate_total",
			Help: "Reference points for which no vehicle could be selected",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearest_rate_limited_total",
			Help: "Search requests rejected by the rate limiter",
		}),
	}

	reg.MustRegister(m.recordsLoaded, m.loadSeconds, m.searchLatency, m.noCandidate, m.rateLimited)
	return m
}

func (m *Metrics) ObserveLoad(records int, d time.Duration) {
	if m == nil {
		return
	}
	m.recordsLoaded.Set(float64(records))
	m.loadSeconds.Set(d.Seconds())
}

func (m *Metrics) ObserveSearch(d time.Duration, results []domain.NearestResult, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.searchLatency.WithLabelValues(status).Observe(d.Seconds())

	for _, r := range results {
		if errors.Is(r.Err, domain.ErrNoCandidate) {
			m.noCandidate.Inc()
		}
	}
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
