package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure"
	kafkapc "github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure/kafka"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const _defaultReadBackoff = time.Second

// CleanupController consumes the content topic and retries blob deletions
// queued by the save and delete workflows. Other event types are skipped.
type CleanupController struct {
	content usecase.ContentUseCase
	er      infrastructure.EventsReader
	logger  logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration
	readBackoff    time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	content usecase.ContentUseCase,
	er infrastructure.EventsReader,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *CleanupController {
	return &CleanupController{
		content:        content,
		er:             er,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		readBackoff:    _defaultReadBackoff,
		workers:        workers,
	}
}

func (c *CleanupController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("CleanupController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				// 1. read
				event, err := c.er.ReadEvent(c.ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}

					c.logger.Error(err, "CleanupController - Start - c.er.ReadEvent")

					// a broker that stays down must not spin the loop
					select {
					case <-time.After(c.readBackoff):
					case <-c.ctx.Done():
						return
					}
					continue
				}

				// 2. hand over to a worker
				select {
				case tasks <- event:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

func (c *CleanupController) processEvent(ctx context.Context, event kafka.Message) error {
	t := kafkapc.EventType(event)
	if t != entity.EventBlobCleanup {
		c.logger.Debug("skipping event, type=%s, key=%s", t, event.Key)
		return nil
	}

	var payload entity.BlobCleanupPayload
	if err := json.Unmarshal(event.Value, &payload); err != nil {
		return fmt.Errorf("CleanupController - processEvent - json.Unmarshal: %w", err)
	}

	if err := c.content.RetryBlobCleanup(ctx, payload); err != nil {
		return fmt.Errorf("CleanupController - processEvent - c.content.RetryBlobCleanup: %w", err)
	}

	return nil
}

// worker commits every message it was handed. A failed retry has already
// been queued again through the outbox, or given up on.
func (c *CleanupController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "CleanupController - worker - panic")
				}
			}()

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err := c.processEvent(processCtx, event)
			processCancel()
			if err != nil {
				c.logger.Error(err, "CleanupController - worker - c.processEvent")
			}

			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err = c.er.CommitEvent(commitCtx, event)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "CleanupController - worker - c.er.CommitEvent")
			}
		}()
	}
}

func (c *CleanupController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		if err := c.er.Close(); err != nil {
			c.logger.Error(err, "CleanupController - Shutdown - c.er.Close")
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("CleanupController - Shutdown: %w", ctx.Err())
	}
}
