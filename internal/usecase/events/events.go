package events

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/repo"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/google/uuid"
)

// UseCase drives the content outbox for the relay worker.
type UseCase struct {
	outbox    repo.OutboxRepo
	retention time.Duration

	logger logger.Interface
}

func New(outbox repo.OutboxRepo, retention time.Duration, l logger.Interface) *UseCase {
	return &UseCase{
		outbox:    outbox,
		retention: retention,
		logger:    l,
	}
}

func ids(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))
	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}

func (uc *UseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outbox.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("EventsUseCase - GetPendingEvents - uc.outbox.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *UseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.MarkAsProcessingBatch(ctx, ids(events))
	if err != nil {
		return fmt.Errorf("EventsUseCase - MarkAsProcessingBatch - uc.outbox.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *UseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.MarkAsProcessedBatch(ctx, ids(events))
	if err != nil {
		return fmt.Errorf("EventsUseCase - MarkAsProcessedBatch - uc.outbox.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *UseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.IncrementRetryCountBatch(ctx, ids(events))
	if err != nil {
		return fmt.Errorf("EventsUseCase - IncrementRetryCountBatch - uc.outbox.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *UseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outbox.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("EventsUseCase - MarkMaxRetriesAsFailed - uc.outbox.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *UseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outbox.DeleteOldProcessedAndFailed(ctx, uc.retention)
	if err != nil {
		return fmt.Errorf("EventsUseCase - CleanupOutbox - uc.outbox.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old outbox events, count = %d", count)
	}

	return nil
}
