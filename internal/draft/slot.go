package draft

import (
	"fmt"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
)

type SlotState int

const (
	// Unchanged keeps the persisted asset as-is.
	Unchanged SlotState = iota
	// Pending holds a selected local file that is uploaded on save.
	Pending
	// Deleted clears the reference on save and purges the original asset
	// once the record no longer points at it.
	Deleted
)

func (s SlotState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Slot tracks one image field of a draft. Each slot keeps its own original
// reference, so cleanup never mixes up assets of sibling slots.
type Slot struct {
	original entity.AssetRef
	state    SlotState
	pending  *entity.Upload
}

func NewSlot(original entity.AssetRef) Slot {
	return Slot{original: original}
}

func (s *Slot) State() SlotState {
	return s.state
}

func (s *Slot) Original() entity.AssetRef {
	return s.original
}

// PendingFile is non-nil only in the Pending state.
func (s *Slot) PendingFile() *entity.Upload {
	return s.pending
}

// Stage selects a new local file. It replaces a previously staged file and
// supersedes a removal; the original asset is still reclaimed on save.
func (s *Slot) Stage(f *entity.Upload) error {
	if f == nil || len(f.Data) == 0 {
		return fmt.Errorf("%w: empty file", errs.ErrInvalidValue)
	}

	s.state = Pending
	s.pending = f

	return nil
}

// Remove drops any staged file and marks the original for deletion. A slot
// with no original asset simply goes back to Unchanged.
func (s *Slot) Remove() {
	s.pending = nil

	if s.original.Empty() {
		s.state = Unchanged
		return
	}

	s.state = Deleted
}

// Restore undoes a removal within the same edit session.
func (s *Slot) Restore() error {
	if s.state != Deleted {
		return fmt.Errorf("%w: restore from %s", errs.ErrInvalidTransition, s.state)
	}

	s.state = Unchanged

	return nil
}

func (s *Slot) Reset() {
	s.state = Unchanged
	s.pending = nil
}

// Present reports whether the slot resolves to a non-blank image on save.
func (s *Slot) Present() bool {
	switch s.state {
	case Pending:
		return true
	case Deleted:
		return false
	default:
		return s.original.URL != ""
	}
}

func (s *Slot) Dirty() bool {
	return s.state != Unchanged
}

type SlotView struct {
	Name            string          `json:"name"`
	State           string          `json:"state"`
	Asset           entity.AssetRef `json:"asset"`
	PendingFilename string          `json:"pending_filename,omitempty"`
}

func (s *Slot) view(name string) SlotView {
	v := SlotView{
		Name:  name,
		State: s.state.String(),
		Asset: s.original,
	}

	if s.pending != nil {
		v.PendingFilename = s.pending.Filename
	}

	return v
}
