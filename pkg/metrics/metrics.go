package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер всех prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBPoolOpenConns     *prometheus.GaugeVec
	DBPoolIdleConns     *prometheus.GaugeVec
	DBPoolInUseConns    *prometheus.GaugeVec
	DBPoolWaitCount     *prometheus.GaugeVec
	DBTxRetriesTotal    *prometheus.CounterVec

	// Business
	AppointmentsCreatedTotal   *prometheus.CounterVec
	AppointmentsCancelledTotal *prometheus.CounterVec
	SlotFullRejectionsTotal    *prometheus.CounterVec
	EventsPublishedTotal       *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolWaitCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBTxRetriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		AppointmentsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of appointments created",
			ConstLabels: constLabels,
		}, []string{"type", "status"}),

		AppointmentsCancelledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Total number of appointments cancelled",
			ConstLabels: constLabels,
		}, []string{"type"}),

		SlotFullRejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_full_rejections_total",
			Help:        "Total number of bookings rejected because the slot was full",
			ConstLabels: constLabels,
		}, []string{"type"}),

		EventsPublishedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Total number of events published to the broker",
			ConstLabels: constLabels,
		}, []string{"event", "status"}),
	}
}
