package forms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
)

// Sweeper periodically closes form sessions left idle past their TTL.
type Sweeper struct {
	forms    usecase.FormsUseCase
	logger   logger.Interface
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(forms usecase.FormsUseCase, l logger.Interface, interval time.Duration) *Sweeper {
	return &Sweeper{
		forms:    forms,
		logger:   l,
		interval: interval,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("FormsSweeper - Start - worker already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if n := s.forms.ExpireIdle(s.ctx); n > 0 {
					s.logger.Debug("forms sweeper closed %d idle forms", n)
				}
			}
		}
	}()

	return nil
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	if !s.started.Load() {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("FormsSweeper - Shutdown: %w", ctx.Err())
	}
}
