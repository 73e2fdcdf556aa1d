package repo

import (
	"context"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/google/uuid"
)

type (
	ProjectRepo interface {
		List(ctx context.Context) ([]entity.Project, error)
		ListTitles(ctx context.Context) ([]entity.ProjectTitle, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
		Create(ctx context.Context, p *entity.Project) error
		Update(ctx context.Context, p *entity.Project) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	JourneyRepo interface {
		List(ctx context.Context) ([]entity.JourneyEntry, error)
		ListByMonthID(ctx context.Context, monthID uuid.UUID) ([]entity.JourneyEntry, error)
		ListByYear(ctx context.Context, year int) ([]entity.JourneyEntry, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.JourneyEntry, error)
		Create(ctx context.Context, e *entity.JourneyEntry) error
		Update(ctx context.Context, e *entity.JourneyEntry) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	MonthRepo interface {
		GetOrCreate(ctx context.Context, year, monthNum int) (*entity.Month, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Month, error)
		List(ctx context.Context) ([]entity.Month, error)
		ListByYear(ctx context.Context, year int) ([]entity.Month, error)
		AvailableYears(ctx context.Context) ([]int, error)
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsFailedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context, olderThan time.Duration) (int64, error)
	}

	BlobRepo interface {
		// Upload stores file under a generated unique key inside folder.
		Upload(ctx context.Context, folder string, file *entity.Upload) (entity.AssetRef, error)
		// Put stores file under the exact key given.
		Put(ctx context.Context, key string, file *entity.Upload) (entity.AssetRef, error)
		// Delete reports false when the asset did not exist.
		Delete(ctx context.Context, assetID string) (bool, error)
		List(ctx context.Context, folder string) ([]entity.BlobMetadata, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
