package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChatTurns counts chat turns by routed intent.
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns handled, by routed intent",
		},
		[]string{"intent"},
	)

	// PaymentLinksCreated counts payment links issued to callers.
	PaymentLinksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_links_created_total",
			Help: "Payment links created",
		},
	)

	// PaymentsCompleted counts callbacks that completed a booking.
	PaymentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Payment callbacks that completed a booking",
		},
	)

	// CallbacksIgnored counts callbacks dropped as unknown, duplicate or unpaid.
	CallbacksIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_callbacks_ignored_total",
			Help: "Payment callbacks ignored (unknown id, duplicate, or not paid)",
		},
	)
)

// Handler exposes the default Prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
