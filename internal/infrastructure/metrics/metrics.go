package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recovery_chat"

// Chat counts chat-domain events. A nil *Chat is valid and records nothing.
type Chat struct {
	roomsCreated     prometheus.Counter
	roomConflicts    prometheus.Counter
	messagesAppended prometheus.Counter
	notifyFailures   prometheus.Counter
}

func NewChat(reg prometheus.Registerer) *Chat {
	f := promauto.With(reg)
	return &Chat{
		roomsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "chat", Name: "rooms_created_total",
			Help: "Chat rooms created on first contact.",
		}),
		roomConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "chat", Name: "room_create_conflicts_total",
			Help: "Concurrent first-contact attempts resolved by re-reading the existing room.",
		}),
		messagesAppended: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "chat", Name: "messages_appended_total",
			Help: "Messages durably appended to a room log.",
		}),
		notifyFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "chat", Name: "notify_failures_total",
			Help: "Delivery notifications that could not be dispatched.",
		}),
	}
}

func (c *Chat) RoomCreated() {
	if c != nil {
		c.roomsCreated.Inc()
	}
}

func (c *Chat) RoomConflict() {
	if c != nil {
		c.roomConflicts.Inc()
	}
}

func (c *Chat) MessageAppended() {
	if c != nil {
		c.messagesAppended.Inc()
	}
}

func (c *Chat) NotifyFailed() {
	if c != nil {
		c.notifyFailures.Inc()
	}
}

// HTTP records per-route request counts and latencies.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Middleware observes every request. Unmatched routes share one label.
func (h *HTTP) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		h.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		h.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
