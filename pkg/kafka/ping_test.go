package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPing_NoBrokers(t *testing.T) {
	require.Error(t, Ping(context.Background(), nil))
}

func TestPing_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// port 1 on loopback refuses connections
	require.Error(t, Ping(ctx, []string{"127.0.0.1:1"}))
}
