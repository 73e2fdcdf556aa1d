// Package kafka holds what the producer and consumer share.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Ping succeeds once any of the brokers answers a metadata request.
func Ping(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("Kafka - Ping: no brokers configured")
	}

	var errs []error

	for _, addr := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, fmt.Errorf("kafka.DialContext(%s): %w", addr, err))
			continue
		}

		_, err = conn.Brokers()
		conn.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("conn.Brokers(%s): %w", addr, err))
			continue
		}

		return nil
	}

	return fmt.Errorf("Kafka - Ping: %w", errors.Join(errs...))
}
