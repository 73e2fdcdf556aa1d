package draft

import (
	"testing"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name string) *entity.Upload {
	return &entity.Upload{Filename: name, ContentType: "image/png", Data: []byte{1, 2, 3}}
}

func TestSlotTransitions(t *testing.T) {
	managed := entity.AssetRef{URL: "https://cdn/x.png", AssetID: "project_imgs/x"}

	tests := []struct {
		name     string
		original entity.AssetRef
		apply    func(s *Slot)
		state    SlotState
		present  bool
	}{
		{
			name:     "untouched keeps original",
			original: managed,
			apply:    func(*Slot) {},
			state:    Unchanged,
			present:  true,
		},
		{
			name:     "stage from unchanged",
			original: managed,
			apply:    func(s *Slot) { _ = s.Stage(upload("a.png")) },
			state:    Pending,
			present:  true,
		},
		{
			name:     "remove managed original",
			original: managed,
			apply:    func(s *Slot) { s.Remove() },
			state:    Deleted,
			present:  false,
		},
		{
			name:     "stage after remove",
			original: managed,
			apply: func(s *Slot) {
				s.Remove()
				_ = s.Stage(upload("a.png"))
			},
			state:   Pending,
			present: true,
		},
		{
			name:     "remove pending drops file",
			original: managed,
			apply: func(s *Slot) {
				_ = s.Stage(upload("a.png"))
				s.Remove()
			},
			state:   Deleted,
			present: false,
		},
		{
			name:     "remove on empty slot clears",
			original: entity.AssetRef{},
			apply: func(s *Slot) {
				_ = s.Stage(upload("a.png"))
				s.Remove()
			},
			state:   Unchanged,
			present: false,
		},
		{
			name:     "restore after remove",
			original: managed,
			apply: func(s *Slot) {
				s.Remove()
				_ = s.Restore()
			},
			state:   Unchanged,
			present: true,
		},
		{
			name:     "pasted url is present",
			original: entity.AssetRef{URL: "https://elsewhere/y.png"},
			apply:    func(*Slot) {},
			state:    Unchanged,
			present:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlot(tt.original)
			tt.apply(&s)

			assert.Equal(t, tt.state, s.State())
			assert.Equal(t, tt.present, s.Present())
			assert.Equal(t, tt.original, s.Original())
			if tt.state != Pending {
				assert.Nil(t, s.PendingFile())
			}
		})
	}
}

func TestSlotRestoreRequiresDeleted(t *testing.T) {
	s := NewSlot(entity.AssetRef{URL: "u", AssetID: "a"})

	err := s.Restore()
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	require.NoError(t, s.Stage(upload("a.png")))
	require.ErrorIs(t, s.Restore(), errs.ErrInvalidTransition)
}

func TestSlotStageRejectsEmptyFile(t *testing.T) {
	s := NewSlot(entity.AssetRef{})

	require.ErrorIs(t, s.Stage(nil), errs.ErrInvalidValue)
	require.ErrorIs(t, s.Stage(&entity.Upload{Filename: "a.png"}), errs.ErrInvalidValue)
	assert.Equal(t, Unchanged, s.State())
}

func TestSlotRestageReplacesFile(t *testing.T) {
	s := NewSlot(entity.AssetRef{})

	require.NoError(t, s.Stage(upload("a.png")))
	require.NoError(t, s.Stage(upload("b.png")))

	assert.Equal(t, "b.png", s.PendingFile().Filename)
}
