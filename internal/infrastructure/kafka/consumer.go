package kafka

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/kafka/consumer"
	"github.com/segmentio/kafka-go"
)

// EventConsumer reads content events with manual commits, so a message is
// only acknowledged once its handler is done with it.
type EventConsumer struct {
	*consumer.Consumer
}

func NewEventConsumer(c *consumer.Consumer) *EventConsumer {
	return &EventConsumer{c}
}

func (ec *EventConsumer) ReadEvent(ctx context.Context) (kafka.Message, error) {
	msg, err := ec.Reader.FetchMessage(ctx)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("EventConsumer - ReadEvent - ec.Reader.FetchMessage: %w", err)
	}

	return msg, nil
}

func (ec *EventConsumer) CommitEvent(ctx context.Context, msg kafka.Message) error {
	if err := ec.Reader.CommitMessages(ctx, msg); err != nil {
		return fmt.Errorf("EventConsumer - CommitEvent - ec.Reader.CommitMessages(offset=%d): %w", msg.Offset, err)
	}

	return nil
}

func (ec *EventConsumer) Close() error {
	if err := ec.Consumer.Close(); err != nil {
		return fmt.Errorf("EventConsumer - Close: %w", err)
	}

	return nil
}

// EventType reads the event_type header set by the outbox relay. Messages
// without one yield "".
func EventType(msg kafka.Message) entity.EventType {
	for _, h := range msg.Headers {
		if h.Key == HeaderEventType {
			return entity.EventType(h.Value)
		}
	}

	return ""
}
