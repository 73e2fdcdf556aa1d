// Package draft holds the in-memory state of an open edit form: plain field
// values, per-slot staged image changes and the snapshot taken when the form
// was opened. A draft is consumed by the content use-case on submit.
package draft

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

type Draft interface {
	Kind() entity.Kind
	EntityID() (uuid.UUID, bool)

	SetField(name, value string) error
	StageFile(slot string, f *entity.Upload) error
	RemoveFile(slot string) error
	RestoreFile(slot string) error
	LoadMarkdown(filename, content string) error
	ClearMarkdown() error

	IsDirty() bool
	Missing() []string

	BeginSave() error
	EndSave(consumed bool)
	Saving() bool
	Consumed() bool

	View() View
}

type View struct {
	Kind     entity.Kind `json:"kind"`
	EntityID *uuid.UUID  `json:"entity_id,omitempty"`
	Fields   any         `json:"fields"`
	Slots    []SlotView  `json:"slots"`
	Dirty    bool        `json:"dirty"`
	Saving   bool        `json:"saving"`
	Missing  []string    `json:"missing"`
}

// base carries the locking shared by every draft kind. Mutations are refused
// while a save is in flight, so the saver may read the draft without the lock
// once BeginSave succeeded. A draft that was saved (or discarded) is consumed
// and refuses both mutations and further saves.
type base struct {
	mu       sync.Mutex
	saving   bool
	consumed bool
}

func (b *base) BeginSave() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.consumed:
		return errs.ErrDraftConsumed
	case b.saving:
		return errs.ErrSaveInProgress
	}
	b.saving = true

	return nil
}

// EndSave releases the guard taken by BeginSave. consumed marks the draft as
// used up.
func (b *base) EndSave(consumed bool) {
	b.mu.Lock()
	b.saving = false
	b.consumed = b.consumed || consumed
	b.mu.Unlock()
}

func (b *base) Saving() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.saving
}

func (b *base) Consumed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.consumed
}

// mutate runs f under the lock unless a save is running or already done.
func (b *base) mutate(f func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.consumed:
		return errs.ErrDraftConsumed
	case b.saving:
		return errs.ErrSaveInProgress
	}

	return f()
}

func (b *base) read(f func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f()
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	nonWordRe     = regexp.MustCompile(`[^\w-]+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	underscoresRe = regexp.MustCompile(`_{2,}`)
)

// GenerateSlug builds a URL-friendly slug from a title.
func GenerateSlug(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRe.ReplaceAllString(s, "-")

	return nonWordRe.ReplaceAllString(s, "")
}

// MarkdownFilename derives a download filename for markdown content from a title.
func MarkdownFilename(title string) string {
	name := nonAlnumRe.ReplaceAllString(title, "_")
	name = strings.ToLower(underscoresRe.ReplaceAllString(name, "_"))
	if name == "" {
		name = "document"
	}

	return name + ".md"
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", errs.ErrUnknownField, name)
}

func unknownSlot(name string) error {
	return fmt.Errorf("%w: %q", errs.ErrUnknownSlot, name)
}

func entityID(id uuid.UUID) (uuid.UUID, bool) {
	return id, id != uuid.Nil
}

func idPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}

	return &id
}
