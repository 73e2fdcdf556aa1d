// Package content owns the save and delete workflows of projects and journey
// entries. Both keep the record store and the blob store consistent: uploads
// happen before the record write, deletions of superseded assets after it.
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure"
	"github.com/andreyxaxa/portfolio-dashboard/internal/repo"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/google/uuid"
)

const _defaultMaxCleanupAttempts = 5

type UseCase struct {
	projects   repo.ProjectRepo
	journey    repo.JourneyRepo
	months     repo.MonthRepo
	outbox     repo.OutboxRepo
	blobs      repo.BlobRepo
	transactor repo.Transactor

	metrics infrastructure.Metrics
	logger  logger.Interface

	maxCleanupAttempts int
	now                func() time.Time
}

func New(
	projects repo.ProjectRepo,
	journey repo.JourneyRepo,
	months repo.MonthRepo,
	outbox repo.OutboxRepo,
	blobs repo.BlobRepo,
	transactor repo.Transactor,
	m infrastructure.Metrics,
	l logger.Interface,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		projects:           projects,
		journey:            journey,
		months:             months,
		outbox:             outbox,
		blobs:              blobs,
		transactor:         transactor,
		metrics:            m,
		logger:             l,
		maxCleanupAttempts: _defaultMaxCleanupAttempts,
		now:                time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

type Option func(*UseCase)

// MaxCleanupAttempts bounds how often a failed asset deletion is retried
// through the outbox before it is given up and left as an orphan.
func MaxCleanupAttempts(n int) Option {
	return func(uc *UseCase) {
		uc.maxCleanupAttempts = n
	}
}

func (uc *UseCase) ListProjects(ctx context.Context) ([]entity.Project, error) {
	projects, err := uc.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - ListProjects - uc.projects.List: %w", err)
	}

	return projects, nil
}

func (uc *UseCase) ListProjectTitles(ctx context.Context) ([]entity.ProjectTitle, error) {
	titles, err := uc.projects.ListTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - ListProjectTitles - uc.projects.ListTitles: %w", err)
	}

	return titles, nil
}

func (uc *UseCase) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - GetProject - uc.projects.GetByID: %w", err)
	}

	return p, nil
}

func (uc *UseCase) ListJourney(ctx context.Context, filter usecase.JourneyFilter) ([]entity.JourneyEntry, error) {
	var (
		entries []entity.JourneyEntry
		err     error
	)

	switch {
	case filter.MonthID != nil:
		entries, err = uc.journey.ListByMonthID(ctx, *filter.MonthID)
	case filter.Year != nil:
		entries, err = uc.journey.ListByYear(ctx, *filter.Year)
	default:
		entries, err = uc.journey.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - ListJourney - uc.journey.List: %w", err)
	}

	return entries, nil
}

func (uc *UseCase) GetJourney(ctx context.Context, id uuid.UUID) (*entity.JourneyEntry, error) {
	e, err := uc.journey.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - GetJourney - uc.journey.GetByID: %w", err)
	}

	return e, nil
}

func (uc *UseCase) ListMonths(ctx context.Context, year *int) ([]entity.Month, error) {
	var (
		months []entity.Month
		err    error
	)

	if year != nil {
		months, err = uc.months.ListByYear(ctx, *year)
	} else {
		months, err = uc.months.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - ListMonths - uc.months.List: %w", err)
	}

	return months, nil
}

func (uc *UseCase) AvailableYears(ctx context.Context) ([]int, error) {
	years, err := uc.months.AvailableYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("ContentUseCase - AvailableYears - uc.months.AvailableYears: %w", err)
	}

	return years, nil
}
