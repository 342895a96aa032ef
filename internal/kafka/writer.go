package kafka

import (
	"context"
	"encoding/json"
	"time"

	k "github.com/segmentio/kafka-go"
)

// envelope is the wire shape consumers of the chat events topic decode.
type envelope struct {
	Kind    string    `json:"event"`
	At      time.Time `json:"at"`
	Payload any       `json:"message"`
}

type Writer struct {
	w *k.Writer
}

// NewWriter targets the single chat events topic. The hash balancer pins a
// key (room) to one partition so per-room event order survives partitioning.
func NewWriter(bootstrap, topic string) (*Writer, error) {
	w := &k.Writer{
		Addr:         k.TCP(bootstrap),
		Topic:        topic,
		Balancer:     &k.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: k.RequireNone,
		Async:        true,
	}
	return &Writer{w: w}, nil
}

func (w *Writer) Close() error { return w.w.Close() }

// PublishEvent wraps the payload in the event envelope and writes it keyed by
// key. Fire-and-forget: acks are not awaited.
func (w *Writer) PublishEvent(ctx context.Context, kind, key string, payload any) error {
	b, err := json.Marshal(envelope{Kind: kind, At: time.Now(), Payload: payload})
	if err != nil {
		return err
	}
	return w.w.WriteMessages(ctx, k.Message{
		Key:   []byte(key),
		Value: b,
		Time:  time.Now(),
	})
}
