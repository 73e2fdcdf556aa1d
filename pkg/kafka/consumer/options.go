package consumer

import "time"

type Option func(*Consumer)

func ConnAttempts(attempts int) Option {
	return func(c *Consumer) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *Consumer) {
		c.connTimeout = timeout
	}
}

// StartOffset applies when the group has no committed offset yet.
func StartOffset(offset int64) Option {
	return func(c *Consumer) {
		c.startOffset = offset
	}
}

// MaxWait bounds how long a fetch waits for new messages. Cleanup events are
// rare, so fetches return as soon as one message is there.
func MaxWait(d time.Duration) Option {
	return func(c *Consumer) {
		c.maxWait = d
	}
}
