package content

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/draft"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

// savePlan collects the blob side effects of one save attempt.
type savePlan struct {
	kind entity.Kind
	// uploaded during this attempt; orphaned if the save fails later
	uploaded []entity.AssetRef
	// no longer referenced once the record write commits
	stale []entity.AssetRef
}

// resolveSlot turns a staged slot into the reference the record will carry.
func (uc *UseCase) resolveSlot(ctx context.Context, plan *savePlan, s draft.Slot) (entity.AssetRef, error) {
	original := s.Original()

	switch s.State() {
	case draft.Pending:
		ref, err := uc.blobs.Upload(ctx, plan.kind.Folder(), s.PendingFile())
		uc.metrics.BlobUploaded(plan.kind, err == nil)
		if err != nil {
			return entity.AssetRef{}, fmt.Errorf("ContentUseCase - resolveSlot - uc.blobs.Upload: %w: %w", errs.ErrUpload, err)
		}

		plan.uploaded = append(plan.uploaded, ref)
		if original.Managed() {
			plan.stale = append(plan.stale, original)
		}

		return ref, nil
	case draft.Deleted:
		if original.Managed() {
			plan.stale = append(plan.stale, original)
		}

		return entity.AssetRef{}, nil
	default:
		return original, nil
	}
}

func (uc *UseCase) validate(d draft.Draft, n usecase.Notifier, start time.Time) error {
	missing := d.Missing()
	if len(missing) == 0 {
		return nil
	}

	err := &errs.ValidationError{Fields: missing}
	n.Error(err.Error())
	uc.metrics.SaveFinished(d.Kind(), outcomeValidation, uc.since(start))

	return err
}

func (uc *UseCase) saveFailed(plan *savePlan, n usecase.Notifier, msg, outcome string, start time.Time) {
	uc.logOrphans(plan.kind, plan.uploaded)
	n.Error(msg)
	uc.metrics.SaveFinished(plan.kind, outcome, uc.since(start))
}

// SaveProject persists a project draft. The draft is locked for the whole
// call; a concurrent submit of the same draft gets ErrSaveInProgress and any
// submit after a successful one gets ErrDraftConsumed.
func (uc *UseCase) SaveProject(ctx context.Context, d *draft.ProjectDraft, n usecase.Notifier) (*entity.Project, error) {
	const kind = entity.KindProject

	if err := d.BeginSave(); err != nil {
		return nil, fmt.Errorf("ContentUseCase - SaveProject - d.BeginSave: %w", err)
	}

	// a committed draft is used up, whatever happens after the write
	committed := false
	defer func() { d.EndSave(committed) }()

	start := uc.now()

	if err := uc.validate(d, n, start); err != nil {
		return nil, fmt.Errorf("ContentUseCase - SaveProject - uc.validate: %w", err)
	}

	n.Loading("Saving project...")

	// 1. uploads, before the record can reference them
	plan := &savePlan{kind: kind}

	image, err := uc.resolveSlot(ctx, plan, d.Image())
	if err != nil {
		uc.saveFailed(plan, n, "Failed to upload project image", outcomeUpload, start)
		return nil, fmt.Errorf("ContentUseCase - SaveProject: %w", err)
	}

	// 2. the single record write
	f := d.Fields()
	_, exists := d.EntityID()
	now := uc.now()

	p := d.Original()
	p.Slug = f.Slug
	p.Title = f.Title
	p.Date = f.Date
	p.Description = f.Description
	p.MarkdownFile = f.MarkdownFile
	p.MarkdownContent = f.MarkdownContent
	p.ToolIcon1 = f.ToolIcon1
	p.ToolIcon2 = f.ToolIcon2
	p.Image = image
	p.UpdatedAt = now
	if !exists {
		p.ID = uuid.New()
		p.CreatedAt = now
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if exists {
			if err := uc.projects.Update(ctx, &p); err != nil {
				return fmt.Errorf("uc.projects.Update: %w", err)
			}
		} else {
			if err := uc.projects.Create(ctx, &p); err != nil {
				return fmt.Errorf("uc.projects.Create: %w", err)
			}
		}

		return uc.writeContentEvent(ctx, entity.EventContentSaved, kind, p.ID, p.Slug)
	})
	if err != nil {
		uc.saveFailed(plan, n, "Failed to save project", outcomeWrite, start)
		return nil, fmt.Errorf("ContentUseCase - SaveProject - uc.transactor.WithinTransaction: %w: %w", errs.ErrRecordWrite, err)
	}
	committed = true

	// 3. superseded assets, only after the commit
	uc.purge(ctx, kind, p.ID, plan.stale)

	uc.metrics.SaveFinished(kind, outcomeOK, uc.since(start))
	n.Success("Project saved")

	return &p, nil
}

// SaveJourney persists a journey draft. A year/month pair is resolved to a
// month row before any blob work starts.
func (uc *UseCase) SaveJourney(ctx context.Context, d *draft.JourneyDraft, n usecase.Notifier) (*entity.JourneyEntry, error) {
	const kind = entity.KindJourney

	if err := d.BeginSave(); err != nil {
		return nil, fmt.Errorf("ContentUseCase - SaveJourney - d.BeginSave: %w", err)
	}

	// a committed draft is used up, whatever happens after the write
	committed := false
	defer func() { d.EndSave(committed) }()

	start := uc.now()

	if err := uc.validate(d, n, start); err != nil {
		return nil, fmt.Errorf("ContentUseCase - SaveJourney - uc.validate: %w", err)
	}

	n.Loading("Saving journey entry...")

	f := d.Fields()

	// 1. parent month
	monthID := f.Month.ID
	if !f.Month.Resolved() {
		m, err := uc.months.GetOrCreate(ctx, f.Month.Year, f.Month.MonthNum)
		if err != nil {
			n.Error("Failed to resolve month")
			uc.metrics.SaveFinished(kind, outcomeMonth, uc.since(start))
			return nil, fmt.Errorf("ContentUseCase - SaveJourney - uc.months.GetOrCreate: %w: %w", errs.ErrMonthResolve, err)
		}
		monthID = m.ID
	}

	// 2. uploads, slot by slot
	plan := &savePlan{kind: kind}
	slot1, slot2 := d.Slots()

	image1, err := uc.resolveSlot(ctx, plan, slot1)
	if err != nil {
		uc.saveFailed(plan, n, "Failed to upload first image", outcomeUpload, start)
		return nil, fmt.Errorf("ContentUseCase - SaveJourney: %w", err)
	}

	image2, err := uc.resolveSlot(ctx, plan, slot2)
	if err != nil {
		uc.saveFailed(plan, n, "Failed to upload second image", outcomeUpload, start)
		return nil, fmt.Errorf("ContentUseCase - SaveJourney: %w", err)
	}

	// 3. the single record write
	_, exists := d.EntityID()
	now := uc.now()

	e := d.Original()
	e.MonthID = monthID
	e.Title = f.Title
	e.Description = f.Description
	e.TypeIcon1 = f.TypeIcon1
	e.TypeIcon2 = f.TypeIcon2
	e.Action = entity.Action(f.Action)
	e.ProjectSlug = f.ProjectSlug
	e.MarkdownFile = f.MarkdownFile
	e.MarkdownContent = f.MarkdownContent
	e.Image1 = image1
	e.Image2 = image2
	e.UpdatedAt = now
	if !exists {
		e.ID = uuid.New()
		e.CreatedAt = now
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if exists {
			if err := uc.journey.Update(ctx, &e); err != nil {
				return fmt.Errorf("uc.journey.Update: %w", err)
			}
		} else {
			if err := uc.journey.Create(ctx, &e); err != nil {
				return fmt.Errorf("uc.journey.Create: %w", err)
			}
		}

		return uc.writeContentEvent(ctx, entity.EventContentSaved, kind, e.ID, "")
	})
	if err != nil {
		uc.saveFailed(plan, n, "Failed to save journey entry", outcomeWrite, start)
		return nil, fmt.Errorf("ContentUseCase - SaveJourney - uc.transactor.WithinTransaction: %w: %w", errs.ErrRecordWrite, err)
	}
	committed = true

	// 4. superseded assets, only after the commit
	uc.purge(ctx, kind, e.ID, plan.stale)

	uc.metrics.SaveFinished(kind, outcomeOK, uc.since(start))
	n.Success("Journey entry saved")

	return &e, nil
}
