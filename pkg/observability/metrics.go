package observability

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/techseo/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "techseo"

// Metrics holds the collectors of the service.
type Metrics struct {
	Schemas         *prometheus.CounterVec
	CrossPosts      *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Schemas: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "schemas_total",
				Help:      "TechArticle extractions by result (built or skipped).",
			},
			[]string{"result"},
		),
		CrossPosts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "crossposts_total",
				Help:      "Cross-post renderings by platform.",
			},
			[]string{"platform"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route pattern and status code.",
			},
			[]string{"route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(m.Schemas, m.CrossPosts, m.Requests, m.RequestDuration)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Hooks returns lifecycle hooks that log each event and count it.
// A nil Metrics only logs. A nil logger resolves slog.Default per event.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func() *slog.Logger {
		if logger != nil {
			return logger
		}
		return slog.Default()
	}
	return domain.LifecycleHooks{
		OnSchema: func(ctx context.Context, e *domain.SchemaEvent) {
			log().InfoContext(ctx, string(e.Type),
				"post_id", e.PostID,
				"code_samples", e.CodeSamples,
				"steps", e.Steps,
			)
			if m == nil {
				return
			}
			result := "skipped"
			if e.Type == domain.EventSchemaBuilt {
				result = "built"
			}
			m.Schemas.WithLabelValues(result).Inc()
		},
		OnCrossPost: func(ctx context.Context, e *domain.CrossPostEvent) {
			log().InfoContext(ctx, string(e.Type),
				"post_id", e.PostID,
				"platform", e.Platform,
				"length", e.Length,
			)
			if m == nil {
				return
			}
			m.CrossPosts.WithLabelValues(e.Platform).Inc()
		},
	}
}
