package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ctfchat_connections_active",
			Help: "Currently connected websocket sessions",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctfchat_messages_total",
			Help: "Messages stored and broadcast",
		},
		[]string{"channel_type"}, // "global", "team" or "admin_broadcast"
	)

	MessagesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctfchat_messages_rejected_total",
			Help: "Messages rejected before storage",
		},
		[]string{"reason"}, // "blocked", "muted", "empty", "flag_content", "no_team"
	)

	AdminActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctfchat_admin_actions_total",
			Help: "Moderation actions taken by admins",
		},
		[]string{"action"},
	)
)
