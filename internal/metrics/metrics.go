package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Transitions          *prometheus.CounterVec
	Submissions          *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	NotificationsDropped prometheus.Counter
	HTTPDuration         *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_transitions_total",
		Help: "Checkout state transitions.",
	}, []string{"from", "to"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_submissions_total",
		Help: "Checkout submissions by channel and outcome.",
	}, []string{"channel", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_notification_failures_total",
		Help: "Order notifications that could not be delivered.",
	}, []string{"notifier"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_notifications_dropped_total",
		Help: "Order events dropped because the notification queue was full.",
	})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	r.MustRegister(transitions, submissions, failures, dropped, httpDuration)
	return &Registry{
		reg:                  r,
		Transitions:          transitions,
		Submissions:          submissions,
		NotificationFailures: failures,
		NotificationsDropped: dropped,
		HTTPDuration:         httpDuration,
	}
}

func (r *Registry) Transition(from, to string) {
	r.Transitions.WithLabelValues(from, to).Inc()
}

func (r *Registry) Submission(channel, outcome string) {
	r.Submissions.WithLabelValues(channel, outcome).Inc()
}

func (r *Registry) NotificationFailed(notifier string) {
	r.NotificationFailures.WithLabelValues(notifier).Inc()
}

func (r *Registry) NotificationDropped() {
	r.NotificationsDropped.Inc()
}

func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
