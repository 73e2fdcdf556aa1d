// Package forms keeps open edit sessions on the server. Each session owns one
// draft until it is submitted, discarded or expires.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/draft"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

const _defaultTTL = 2 * time.Hour

type session struct {
	draft      draft.Draft
	lastAccess time.Time
}

type UseCase struct {
	content   usecase.ContentUseCase
	processor infrastructure.ImageProcessor

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time

	logger logger.Interface
}

func New(content usecase.ContentUseCase, p infrastructure.ImageProcessor, l logger.Interface, opts ...Option) *UseCase {
	uc := &UseCase{
		content:   content,
		processor: p,
		sessions:  make(map[uuid.UUID]*session),
		ttl:       _defaultTTL,
		now:       time.Now,
		logger:    l,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Open starts a session. With id set the persisted record is loaded and
// becomes the snapshot of the draft.
func (uc *UseCase) Open(ctx context.Context, kind entity.Kind, id *uuid.UUID) (*usecase.Form, error) {
	var d draft.Draft

	switch kind {
	case entity.KindProject:
		if id == nil {
			d = draft.NewProject()
			break
		}

		p, err := uc.content.GetProject(ctx, *id)
		if err != nil {
			return nil, fmt.Errorf("FormsUseCase - Open - uc.content.GetProject: %w", err)
		}
		d = draft.EditProject(*p)
	case entity.KindJourney:
		if id == nil {
			d = draft.NewJourney()
			break
		}

		e, err := uc.content.GetJourney(ctx, *id)
		if err != nil {
			return nil, fmt.Errorf("FormsUseCase - Open - uc.content.GetJourney: %w", err)
		}
		d = draft.EditJourney(*e)
	default:
		return nil, fmt.Errorf("FormsUseCase - Open - %q: %w", kind, errs.ErrUnknownKind)
	}

	formID := uuid.New()

	uc.mu.Lock()
	uc.sessions[formID] = &session{draft: d, lastAccess: uc.now()}
	uc.mu.Unlock()

	return form(formID, d), nil
}

func (uc *UseCase) Get(_ context.Context, formID uuid.UUID) (*usecase.Form, error) {
	d, err := uc.draft(formID)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - Get: %w", err)
	}

	return form(formID, d), nil
}

// SetFields applies fields in name order, title first so an explicit slug
// given alongside it is kept. It stops at the first invalid field.
func (uc *UseCase) SetFields(_ context.Context, formID uuid.UUID, fields map[string]string) (*usecase.Form, error) {
	d, err := uc.draft(formID)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - SetFields: %w", err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == "title") != (names[j] == "title") {
			return names[i] == "title"
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		if err = d.SetField(name, fields[name]); err != nil {
			return nil, fmt.Errorf("FormsUseCase - SetFields - d.SetField(%s): %w", name, err)
		}
	}

	return form(formID, d), nil
}

func (uc *UseCase) StageFile(ctx context.Context, formID uuid.UUID, slot string, file *entity.Upload) (*usecase.Form, error) {
	d, err := uc.draft(formID)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - StageFile: %w", err)
	}

	prepared, err := uc.processor.Prepare(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - StageFile - uc.processor.Prepare: %w", err)
	}

	if err = d.StageFile(slot, prepared); err != nil {
		return nil, fmt.Errorf("FormsUseCase - StageFile - d.StageFile: %w", err)
	}

	return form(formID, d), nil
}

func (uc *UseCase) RemoveFile(_ context.Context, formID uuid.UUID, slot string) (*usecase.Form, error) {
	return uc.apply(formID, "RemoveFile", func(d draft.Draft) error { return d.RemoveFile(slot) })
}

func (uc *UseCase) RestoreFile(_ context.Context, formID uuid.UUID, slot string) (*usecase.Form, error) {
	return uc.apply(formID, "RestoreFile", func(d draft.Draft) error { return d.RestoreFile(slot) })
}

func (uc *UseCase) LoadMarkdown(_ context.Context, formID uuid.UUID, filename, content string) (*usecase.Form, error) {
	return uc.apply(formID, "LoadMarkdown", func(d draft.Draft) error { return d.LoadMarkdown(filename, content) })
}

func (uc *UseCase) ClearMarkdown(_ context.Context, formID uuid.UUID) (*usecase.Form, error) {
	return uc.apply(formID, "ClearMarkdown", func(d draft.Draft) error { return d.ClearMarkdown() })
}

// Submit hands the draft to the save workflow. The session survives a
// failed save so the user can fix the form and submit again.
func (uc *UseCase) Submit(ctx context.Context, formID uuid.UUID, n usecase.Notifier) (*usecase.SubmitResult, error) {
	d, err := uc.draft(formID)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - Submit: %w", err)
	}

	res := &usecase.SubmitResult{Kind: d.Kind()}

	switch d := d.(type) {
	case *draft.ProjectDraft:
		res.Project, err = uc.content.SaveProject(ctx, d, n)
	case *draft.JourneyDraft:
		res.Journey, err = uc.content.SaveJourney(ctx, d, n)
	default:
		err = errs.ErrUnknownKind
	}
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - Submit: %w", err)
	}

	uc.drop(formID)

	return res, nil
}

// Discard closes a session without saving. Unsaved changes are only thrown
// away after the confirmer approves.
func (uc *UseCase) Discard(ctx context.Context, formID uuid.UUID, c usecase.Confirmer) error {
	d, err := uc.draft(formID)
	if err != nil {
		return fmt.Errorf("FormsUseCase - Discard: %w", err)
	}

	// hold the save guard until the session is gone, so no submit can start
	// on a draft that is being thrown away
	if err = d.BeginSave(); err != nil {
		if errors.Is(err, errs.ErrSaveInProgress) {
			return fmt.Errorf("FormsUseCase - Discard: %w", errs.ErrDiscardWhileSaving)
		}

		return fmt.Errorf("FormsUseCase - Discard - d.BeginSave: %w", err)
	}

	discarded := false
	defer func() { d.EndSave(discarded) }()

	if d.IsDirty() {
		ok, err := c.Confirm(ctx, usecase.Prompt{
			Title:   "Discard changes?",
			Message: "You have unsaved changes. Are you sure you want to close this form?",
		})
		if err != nil {
			return fmt.Errorf("FormsUseCase - Discard - c.Confirm: %w", err)
		}
		if !ok {
			return fmt.Errorf("FormsUseCase - Discard: %w", errs.ErrConfirmationRequired)
		}
	}

	discarded = true
	uc.drop(formID)

	return nil
}

// ExpireIdle drops sessions untouched for longer than the TTL. Sessions with
// a save in flight are kept.
func (uc *UseCase) ExpireIdle(_ context.Context) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	deadline := uc.now().Add(-uc.ttl)
	expired := 0

	for id, s := range uc.sessions {
		if s.lastAccess.Before(deadline) && !s.draft.Saving() {
			delete(uc.sessions, id)
			expired++
		}
	}

	if expired > 0 {
		uc.logger.Info("expired idle forms, count = %d", expired)
	}

	return expired
}

func (uc *UseCase) apply(formID uuid.UUID, op string, f func(d draft.Draft) error) (*usecase.Form, error) {
	d, err := uc.draft(formID)
	if err != nil {
		return nil, fmt.Errorf("FormsUseCase - %s: %w", op, err)
	}

	if err = f(d); err != nil {
		return nil, fmt.Errorf("FormsUseCase - %s: %w", op, err)
	}

	return form(formID, d), nil
}

// draft looks a session up and marks it as used.
func (uc *UseCase) draft(formID uuid.UUID) (draft.Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[formID]
	if !ok {
		return nil, errs.ErrFormNotFound
	}
	s.lastAccess = uc.now()

	return s.draft, nil
}

func (uc *UseCase) drop(formID uuid.UUID) {
	uc.mu.Lock()
	delete(uc.sessions, formID)
	uc.mu.Unlock()
}

func form(id uuid.UUID, d draft.Draft) *usecase.Form {
	return &usecase.Form{ID: id, View: d.View()}
}
