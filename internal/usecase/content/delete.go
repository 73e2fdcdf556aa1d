package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

func (uc *UseCase) DeleteProject(ctx context.Context, id uuid.UUID, n usecase.Notifier) error {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		uc.lookupFailed(entity.KindProject, err, n)
		return fmt.Errorf("ContentUseCase - DeleteProject - uc.projects.GetByID: %w", err)
	}

	err = uc.teardown(ctx, entity.KindProject, p.ID, p.Slug, []entity.AssetRef{p.Image}, uc.projects.Delete, n)
	if err != nil {
		return fmt.Errorf("ContentUseCase - DeleteProject: %w", err)
	}

	return nil
}

func (uc *UseCase) DeleteJourney(ctx context.Context, id uuid.UUID, n usecase.Notifier) error {
	e, err := uc.journey.GetByID(ctx, id)
	if err != nil {
		uc.lookupFailed(entity.KindJourney, err, n)
		return fmt.Errorf("ContentUseCase - DeleteJourney - uc.journey.GetByID: %w", err)
	}

	err = uc.teardown(ctx, entity.KindJourney, e.ID, "", []entity.AssetRef{e.Image1, e.Image2}, uc.journey.Delete, n)
	if err != nil {
		return fmt.Errorf("ContentUseCase - DeleteJourney: %w", err)
	}

	return nil
}

func (uc *UseCase) lookupFailed(kind entity.Kind, err error, n usecase.Notifier) {
	if errors.Is(err, errs.ErrRecordNotFound) {
		n.Error(fmt.Sprintf("The %s no longer exists", kind))
		uc.metrics.DeleteFinished(kind, outcomeNotFound)
		return
	}

	n.Error(fmt.Sprintf("Failed to load %s", kind))
	uc.metrics.DeleteFinished(kind, outcomeDelete)
}

// teardown removes the assets first, best effort, then the row. A blob
// store failure never keeps the user from deleting the record; assets that
// could not be deleted are queued for retry once the row is gone.
func (uc *UseCase) teardown(
	ctx context.Context,
	kind entity.Kind,
	id uuid.UUID,
	slug string,
	assets []entity.AssetRef,
	deleteRecord func(ctx context.Context, id uuid.UUID) error,
	n usecase.Notifier,
) error {
	n.Loading(fmt.Sprintf("Deleting %s...", kind))

	failed := make(map[string]error)

	for _, a := range assets {
		if !a.Managed() {
			continue
		}

		if _, err := uc.blobs.Delete(ctx, a.AssetID); err != nil {
			uc.logger.Warn("asset delete failed, kind=%s, owner=%s, asset=%s, error=%v", kind, id, a.AssetID, err)
			failed[a.AssetID] = err
		}
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := deleteRecord(ctx, id); err != nil {
			return fmt.Errorf("deleteRecord: %w", err)
		}

		return uc.writeContentEvent(ctx, entity.EventContentDeleted, kind, id, slug)
	})
	if err != nil {
		n.Error(fmt.Sprintf("Failed to delete %s", kind))
		uc.metrics.DeleteFinished(kind, outcomeDelete)
		return fmt.Errorf("uc.transactor.WithinTransaction: %w: %w", errs.ErrRecordDelete, err)
	}

	for assetID, cause := range failed {
		uc.cleanupWarning(context.WithoutCancel(ctx), kind, id, assetID, cause)
	}

	uc.metrics.DeleteFinished(kind, outcomeOK)
	n.Success(fmt.Sprintf("The %s was deleted", kind))

	return nil
}

// RetryBlobCleanup retries one queued asset deletion. A failed retry is
// queued again until the attempt budget is spent.
func (uc *UseCase) RetryBlobCleanup(ctx context.Context, p entity.BlobCleanupPayload) error {
	_, err := uc.blobs.Delete(ctx, p.AssetID)
	if err == nil {
		return nil
	}

	p.Attempt++
	if p.Attempt >= uc.maxCleanupAttempts {
		return fmt.Errorf("ContentUseCase - RetryBlobCleanup - giving up on %s after %d attempts: %w", p.AssetID, p.Attempt, err)
	}

	uc.logger.Warn("blob cleanup retry failed, asset=%s, attempt=%d, error=%v", p.AssetID, p.Attempt, err)

	if err = uc.enqueueCleanup(ctx, p); err != nil {
		return fmt.Errorf("ContentUseCase - RetryBlobCleanup - uc.enqueueCleanup: %w", err)
	}

	return nil
}
