package producer

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
	_defaultBatchTimeout = 100 * time.Millisecond
)

// Producer owns a kafka writer. Messages are partitioned by key hash, so
// every message of one key keeps its order.
type Producer struct {
	connAttempts int
	connTimeout  time.Duration

	batchTimeout    time.Duration
	autoCreateTopic bool

	brokers []string
	Writer  *kafka.Writer
}

func New(ctx context.Context, brokers []string, opts ...Option) (*Producer, error) {
	p := &Producer{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		batchTimeout: _defaultBatchTimeout,
		brokers:      brokers,
	}

	for _, opt := range opts {
		opt(p)
	}

	err := retry.Connect(ctx, "Kafka producer", p.connAttempts, p.connTimeout, func(ctx context.Context) error {
		return pkgkafka.Ping(ctx, p.brokers)
	})
	if err != nil {
		return nil, fmt.Errorf("Kafka Producer - New: %w", err)
	}

	p.Writer = &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: p.batchTimeout,

		AllowAutoTopicCreation: p.autoCreateTopic,
	}

	return p, nil
}

func (p *Producer) Close() error {
	if p.Writer == nil {
		return nil
	}

	if err := p.Writer.Close(); err != nil {
		return fmt.Errorf("Kafka Producer - Close: %w", err)
	}

	return nil
}
