package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/google/uuid"
)

const (
	outcomeOK         = "ok"
	outcomeValidation = "validation"
	outcomeMonth      = "month"
	outcomeUpload     = "upload"
	outcomeWrite      = "write"
	outcomeNotFound   = "not_found"
	outcomeDelete     = "delete"
)

func (uc *UseCase) newEvent(t entity.EventType, aggregateID uuid.UUID, payload any) (*entity.OutboxEvent, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - newEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        t,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   uc.now(),
		RetryCount:  0,
	}, nil
}

// writeContentEvent must run inside the record transaction.
func (uc *UseCase) writeContentEvent(ctx context.Context, t entity.EventType, kind entity.Kind, id uuid.UUID, slug string) error {
	event, err := uc.newEvent(t, id, entity.ContentEventPayload{Kind: kind, ID: id, Slug: slug})
	if err != nil {
		return err
	}

	if err = uc.outbox.Create(ctx, event); err != nil {
		return fmt.Errorf("ContentUseCase - writeContentEvent - uc.outbox.Create: %w", err)
	}

	return nil
}

// enqueueCleanup hands a failed asset deletion over to the cleanup consumer.
func (uc *UseCase) enqueueCleanup(ctx context.Context, p entity.BlobCleanupPayload) error {
	event, err := uc.newEvent(entity.EventBlobCleanup, p.OwnerID, p)
	if err != nil {
		return err
	}

	if err = uc.outbox.Create(ctx, event); err != nil {
		return fmt.Errorf("ContentUseCase - enqueueCleanup - uc.outbox.Create: %w", err)
	}

	return nil
}

// purge deletes assets no record references any more. Failures never fail
// the caller: they are counted, logged and queued for retry.
func (uc *UseCase) purge(ctx context.Context, kind entity.Kind, ownerID uuid.UUID, assets []entity.AssetRef) {
	ctx = context.WithoutCancel(ctx)

	for _, a := range assets {
		if _, err := uc.blobs.Delete(ctx, a.AssetID); err != nil {
			uc.cleanupWarning(ctx, kind, ownerID, a.AssetID, err)
		}
	}
}

func (uc *UseCase) cleanupWarning(ctx context.Context, kind entity.Kind, ownerID uuid.UUID, assetID string, cause error) {
	uc.logger.Warn("blob cleanup failed, kind=%s, owner=%s, asset=%s, error=%v", kind, ownerID, assetID, cause)
	uc.metrics.CleanupWarning(kind)

	err := uc.enqueueCleanup(ctx, entity.BlobCleanupPayload{Kind: kind, OwnerID: ownerID, AssetID: assetID})
	if err != nil {
		uc.logger.Error(err, "ContentUseCase - cleanupWarning - uc.enqueueCleanup")
	}
}

func (uc *UseCase) logOrphans(kind entity.Kind, uploaded []entity.AssetRef) {
	if len(uploaded) == 0 {
		return
	}

	ids := make([]string, 0, len(uploaded))
	for _, a := range uploaded {
		ids = append(ids, a.AssetID)
	}

	uc.logger.Warn("orphaned uploads left by failed save, kind=%s, assets=%s", kind, strings.Join(ids, ","))
	uc.metrics.OrphanedUploads(kind, len(uploaded))
}

func (uc *UseCase) since(start time.Time) time.Duration {
	return uc.now().Sub(start)
}
