package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_sent_total",
		Help: "Messages accepted by the send path.",
	})
	MessagesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_deleted_total",
		Help: "Messages removed via cascade delete (root messages only).",
	})
	StateFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_state_fetches_total",
		Help: "Room state poll requests served.",
	})
	Heartbeats = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_heartbeats_total",
		Help: "Presence heartbeats applied.",
	})
	AttachmentsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_attachments_stored_total",
		Help: "Attachments uploaded and recorded.",
	})
)
