package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nogen_ws_active_connections",
		Help: "Currently connected websocket clients.",
	})

	wsEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nogen_ws_events_total",
		Help: "Inbound websocket events by type.",
	}, []string{"event"})

	messagesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nogen_messages_relayed_total",
		Help: "Messages persisted and fanned out by the relay.",
	})

	notificationsPushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nogen_notifications_pushed_total",
		Help: "Best-effort realtime notification pushes.",
	})
)

func SetActiveConnections(n int) {
	activeConnections.Set(float64(n))
}

func IncWSEvent(event string) {
	wsEvents.WithLabelValues(event).Inc()
}

func IncMessageRelayed() {
	messagesRelayed.Inc()
}

func IncNotificationPushed() {
	notificationsPushed.Inc()
}
