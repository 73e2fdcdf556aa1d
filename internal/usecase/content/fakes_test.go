package content

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/repo"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

// recorder keeps the order of every side effect across fakes.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

type fakeBlobs struct {
	repo.BlobRepo
	rec *recorder

	uploadErr map[string]error // by filename
	deleteErr map[string]error // by asset id
	n         int
}

func (f *fakeBlobs) Upload(_ context.Context, folder string, file *entity.Upload) (entity.AssetRef, error) {
	f.rec.add("upload:" + folder)
	if err := f.uploadErr[file.Filename]; err != nil {
		return entity.AssetRef{}, err
	}

	f.n++
	id := fmt.Sprintf("%s/new%d", folder, f.n)

	return entity.AssetRef{URL: "https://cdn/" + id, AssetID: id, OriginalFilename: file.Filename}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, assetID string) (bool, error) {
	f.rec.add("delete:" + assetID)
	if err := f.deleteErr[assetID]; err != nil {
		return false, err
	}

	return true, nil
}

type fakeProjects struct {
	repo.ProjectRepo
	rec *recorder

	stored   map[uuid.UUID]entity.Project
	writeErr error
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	p, ok := f.stored[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}

	return &p, nil
}

func (f *fakeProjects) Create(_ context.Context, p *entity.Project) error {
	f.rec.add("create")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.stored[p.ID] = *p

	return nil
}

func (f *fakeProjects) Update(_ context.Context, p *entity.Project) error {
	f.rec.add("update")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.stored[p.ID] = *p

	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id uuid.UUID) error {
	f.rec.add("record-delete")
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.stored, id)

	return nil
}

type fakeJourney struct {
	repo.JourneyRepo
	rec *recorder

	stored   map[uuid.UUID]entity.JourneyEntry
	writeErr error
}

func (f *fakeJourney) GetByID(_ context.Context, id uuid.UUID) (*entity.JourneyEntry, error) {
	e, ok := f.stored[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}

	return &e, nil
}

func (f *fakeJourney) Create(_ context.Context, e *entity.JourneyEntry) error {
	f.rec.add("create")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.stored[e.ID] = *e

	return nil
}

func (f *fakeJourney) Update(_ context.Context, e *entity.JourneyEntry) error {
	f.rec.add("update")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.stored[e.ID] = *e

	return nil
}

func (f *fakeJourney) Delete(_ context.Context, id uuid.UUID) error {
	f.rec.add("record-delete")
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.stored, id)

	return nil
}

type fakeMonths struct {
	repo.MonthRepo
	rec *recorder

	id  uuid.UUID
	err error

	year, monthNum int
}

func (f *fakeMonths) GetOrCreate(_ context.Context, year, monthNum int) (*entity.Month, error) {
	f.rec.add("month")
	f.year, f.monthNum = year, monthNum
	if f.err != nil {
		return nil, f.err
	}

	return &entity.Month{ID: f.id, Year: year, MonthNum: monthNum}, nil
}

type fakeOutbox struct {
	repo.OutboxRepo
	rec *recorder

	events []*entity.OutboxEvent
}

func (f *fakeOutbox) Create(_ context.Context, event *entity.OutboxEvent) error {
	f.rec.add("outbox:" + string(event.Type))
	f.events = append(f.events, event)

	return nil
}

func (f *fakeOutbox) ofType(t entity.EventType) []*entity.OutboxEvent {
	var res []*entity.OutboxEvent
	for _, e := range f.events {
		if e.Type == t {
			res = append(res, e)
		}
	}

	return res
}

// fakeTx drops outbox events written by a failed transaction, like a rollback.
type fakeTx struct {
	rec    *recorder
	outbox *fakeOutbox
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.rec.add("begin")
	before := len(f.outbox.events)

	if err := fn(ctx); err != nil {
		f.outbox.events = f.outbox.events[:before]
		f.rec.add("rollback")
		return err
	}
	f.rec.add("commit")

	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	saves    map[string]int
	deletes  map[string]int
	warnings int
	orphans  int
}

func (m *fakeMetrics) SaveFinished(kind entity.Kind, outcome string, _ time.Duration) {
	m.mu.Lock()
	m.saves[string(kind)+"/"+outcome]++
	m.mu.Unlock()
}

func (m *fakeMetrics) DeleteFinished(kind entity.Kind, outcome string) {
	m.mu.Lock()
	m.deletes[string(kind)+"/"+outcome]++
	m.mu.Unlock()
}

func (m *fakeMetrics) BlobUploaded(entity.Kind, bool) {}

func (m *fakeMetrics) CleanupWarning(entity.Kind) {
	m.mu.Lock()
	m.warnings++
	m.mu.Unlock()
}

func (m *fakeMetrics) OrphanedUploads(_ entity.Kind, n int) {
	m.mu.Lock()
	m.orphans += n
	m.mu.Unlock()
}

type notes struct {
	loading, success, errors []string
}

func (n *notes) Loading(msg string) { n.loading = append(n.loading, msg) }
func (n *notes) Success(msg string) { n.success = append(n.success, msg) }
func (n *notes) Error(msg string)   { n.errors = append(n.errors, msg) }

type env struct {
	rec      *recorder
	blobs    *fakeBlobs
	projects *fakeProjects
	journey  *fakeJourney
	months   *fakeMonths
	outbox   *fakeOutbox
	metrics  *fakeMetrics
	uc       *UseCase
}

func newEnv(t *testing.T, opts ...Option) *env {
	t.Helper()

	rec := &recorder{}
	e := &env{
		rec:      rec,
		blobs:    &fakeBlobs{rec: rec, uploadErr: map[string]error{}, deleteErr: map[string]error{}},
		projects: &fakeProjects{rec: rec, stored: map[uuid.UUID]entity.Project{}},
		journey:  &fakeJourney{rec: rec, stored: map[uuid.UUID]entity.JourneyEntry{}},
		months:   &fakeMonths{rec: rec, id: uuid.New()},
		outbox:   &fakeOutbox{rec: rec},
		metrics:  &fakeMetrics{saves: map[string]int{}, deletes: map[string]int{}},
	}

	e.uc = New(
		e.projects,
		e.journey,
		e.months,
		e.outbox,
		e.blobs,
		&fakeTx{rec: rec, outbox: e.outbox},
		e.metrics,
		logger.NewWithWriter("error", io.Discard),
		opts...,
	)

	return e
}
