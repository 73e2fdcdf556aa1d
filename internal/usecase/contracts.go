package usecase

import (
	"context"

	"github.com/andreyxaxa/portfolio-dashboard/internal/draft"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/google/uuid"
)

type (
	// Notifier receives user-facing progress messages of a workflow.
	Notifier interface {
		Loading(msg string)
		Success(msg string)
		Error(msg string)
	}

	Prompt struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}

	// Confirmer asks the user to approve a destructive action.
	Confirmer interface {
		Confirm(ctx context.Context, p Prompt) (bool, error)
	}

	JourneyFilter struct {
		MonthID *uuid.UUID
		Year    *int
	}

	// Form is an open edit session.
	Form struct {
		ID uuid.UUID `json:"id"`
		draft.View
	}

	SubmitResult struct {
		Kind    entity.Kind          `json:"kind"`
		Project *entity.Project      `json:"project,omitempty"`
		Journey *entity.JourneyEntry `json:"journey,omitempty"`
	}

	ContentUseCase interface {
		ListProjects(ctx context.Context) ([]entity.Project, error)
		ListProjectTitles(ctx context.Context) ([]entity.ProjectTitle, error)
		GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error)
		ListJourney(ctx context.Context, filter JourneyFilter) ([]entity.JourneyEntry, error)
		GetJourney(ctx context.Context, id uuid.UUID) (*entity.JourneyEntry, error)
		ListMonths(ctx context.Context, year *int) ([]entity.Month, error)
		AvailableYears(ctx context.Context) ([]int, error)

		SaveProject(ctx context.Context, d *draft.ProjectDraft, n Notifier) (*entity.Project, error)
		SaveJourney(ctx context.Context, d *draft.JourneyDraft, n Notifier) (*entity.JourneyEntry, error)
		DeleteProject(ctx context.Context, id uuid.UUID, n Notifier) error
		DeleteJourney(ctx context.Context, id uuid.UUID, n Notifier) error

		RetryBlobCleanup(ctx context.Context, p entity.BlobCleanupPayload) error
	}

	FormsUseCase interface {
		Open(ctx context.Context, kind entity.Kind, id *uuid.UUID) (*Form, error)
		Get(ctx context.Context, formID uuid.UUID) (*Form, error)
		SetFields(ctx context.Context, formID uuid.UUID, fields map[string]string) (*Form, error)
		StageFile(ctx context.Context, formID uuid.UUID, slot string, file *entity.Upload) (*Form, error)
		RemoveFile(ctx context.Context, formID uuid.UUID, slot string) (*Form, error)
		RestoreFile(ctx context.Context, formID uuid.UUID, slot string) (*Form, error)
		LoadMarkdown(ctx context.Context, formID uuid.UUID, filename, content string) (*Form, error)
		ClearMarkdown(ctx context.Context, formID uuid.UUID) (*Form, error)
		Submit(ctx context.Context, formID uuid.UUID, n Notifier) (*SubmitResult, error)
		Discard(ctx context.Context, formID uuid.UUID, c Confirmer) error
		ExpireIdle(ctx context.Context) int
	}

	ImagesUseCase interface {
		List(ctx context.Context, folder string) ([]entity.BlobMetadata, error)
		Upload(ctx context.Context, folder, filename string, file *entity.Upload) (entity.AssetRef, error)
		Delete(ctx context.Context, assetID string) (bool, error)
	}

	EventsUseCase interface {
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)
