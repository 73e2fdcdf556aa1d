package consumer

import (
	"context"
	"fmt"
	"time"

	pkgkafka "github.com/andreyxaxa/portfolio-dashboard/pkg/kafka"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/retry"
	"github.com/segmentio/kafka-go"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultMaxWait      = time.Second
)

// Consumer owns a group reader. Offsets are committed explicitly by the
// caller (CommitInterval stays zero).
type Consumer struct {
	connAttempts int
	connTimeout  time.Duration
	startOffset  int64
	maxWait      time.Duration

	brokers []string
	groupID string
	topic   string

	Reader *kafka.Reader
}

func New(ctx context.Context, brokers []string, groupID, topic string, opts ...Option) (*Consumer, error) {
	c := &Consumer{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		startOffset:  kafka.FirstOffset,
		maxWait:      _defaultMaxWait,
		brokers:      brokers,
		groupID:      groupID,
		topic:        topic,
	}

	for _, opt := range opts {
		opt(c)
	}

	err := retry.Connect(ctx, "Kafka consumer", c.connAttempts, c.connTimeout, func(ctx context.Context) error {
		return pkgkafka.Ping(ctx, c.brokers)
	})
	if err != nil {
		return nil, fmt.Errorf("Kafka Consumer - New: %w", err)
	}

	c.Reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		Topic:       c.topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     c.maxWait,
		StartOffset: c.startOffset,
	})

	return c, nil
}

func (c *Consumer) Close() error {
	if c.Reader == nil {
		return nil
	}

	if err := c.Reader.Close(); err != nil {
		return fmt.Errorf("Kafka Consumer - Close: %w", err)
	}

	return nil
}
