package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

// DefaultPublishTimeout bounds a single Kafka write so a broker outage cannot stall requests.
const DefaultPublishTimeout = 3 * time.Second

// messageWriter is the subset of *kgo.Writer used by KafkaPublisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// KafkaPublisher writes transition events as JSON, keyed by task id so that
// events of one task stay ordered within a partition.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher for a comma separated broker list.
func NewKafkaPublisher(brokersCSV, topic string) (*KafkaPublisher, error) {
	brokers := SplitCSV(brokersCSV)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	w := &kgo.Writer{
		Addr:         kgo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
	}

	return &KafkaPublisher{writer: w, timeout: DefaultPublishTimeout}, nil
}

// Publish writes one event.
func (p *KafkaPublisher) Publish(ctx context.Context, event TransitionEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transition event: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(cctx, kgo.Message{
		Key:   []byte(event.TaskID),
		Value: b,
		Time:  event.OccurredAt,
	}); err != nil {
		return fmt.Errorf("write transition event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// SplitCSV splits a comma separated list, dropping empty items.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
