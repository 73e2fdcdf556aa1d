package draft

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	SlotImage1 = "image_1"
	SlotImage2 = "image_2"
)

// MonthRef is either an existing month (ID) or a year/month pair that is
// resolved through get-or-create when the entry is saved.
type MonthRef struct {
	ID       uuid.UUID `json:"id"`
	Year     int       `json:"year,omitempty"`
	MonthNum int       `json:"month_num,omitempty"`
}

func (m MonthRef) Resolved() bool {
	return m.ID != uuid.Nil
}

func (m MonthRef) Set() bool {
	return m.Resolved() || (m.Year > 0 && entity.ValidMonthNum(m.MonthNum))
}

type JourneyFields struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TypeIcon1       string   `json:"type_icon1"`
	TypeIcon2       string   `json:"type_icon2"`
	Action          string   `json:"action"`
	ProjectSlug     string   `json:"project_slug"`
	MarkdownFile    string   `json:"markdown_file"`
	MarkdownContent string   `json:"markdown_content"`
	Month           MonthRef `json:"month"`
}

type JourneyDraft struct {
	base

	original entity.JourneyEntry
	snapshot JourneyFields
	fields   JourneyFields
	image1   Slot
	image2   Slot
}

func NewJourney() *JourneyDraft {
	return &JourneyDraft{}
}

func EditJourney(e entity.JourneyEntry) *JourneyDraft {
	f := JourneyFields{
		Title:           e.Title,
		Description:     e.Description,
		TypeIcon1:       e.TypeIcon1,
		TypeIcon2:       e.TypeIcon2,
		Action:          string(e.Action),
		ProjectSlug:     e.ProjectSlug,
		MarkdownFile:    e.MarkdownFile,
		MarkdownContent: e.MarkdownContent,
		Month:           MonthRef{ID: e.MonthID},
	}

	return &JourneyDraft{
		original: e,
		snapshot: f,
		fields:   f,
		image1:   NewSlot(e.Image1),
		image2:   NewSlot(e.Image2),
	}
}

func (d *JourneyDraft) Kind() entity.Kind {
	return entity.KindJourney
}

func (d *JourneyDraft) EntityID() (uuid.UUID, bool) {
	return entityID(d.original.ID)
}

func (d *JourneyDraft) Original() entity.JourneyEntry {
	return d.original
}

func (d *JourneyDraft) Fields() JourneyFields {
	var f JourneyFields
	d.read(func() { f = d.fields })

	return f
}

// Slots returns the image slots in save order.
func (d *JourneyDraft) Slots() (image1, image2 Slot) {
	d.read(func() {
		image1, image2 = d.image1, d.image2
	})

	return image1, image2
}

func (d *JourneyDraft) SetField(name, value string) error {
	return d.mutate(func() error {
		switch name {
		case "title":
			d.fields.Title = value
		case "description":
			d.fields.Description = value
		case "type_icon1":
			d.fields.TypeIcon1 = value
		case "type_icon2":
			d.fields.TypeIcon2 = value
		case "action":
			if value != "" && !entity.Action(value).Valid() {
				return fmt.Errorf("%w: action %q", errs.ErrInvalidValue, value)
			}
			d.fields.Action = value
		case "project_slug":
			d.fields.ProjectSlug = value
		case "markdown_file":
			d.fields.MarkdownFile = value
		case "markdown_content":
			d.fields.MarkdownContent = value
		case "month_id":
			return d.setMonthID(value)
		case "date":
			return d.setDate(value)
		case "year":
			n, err := parseInt(name, value)
			if err != nil {
				return err
			}
			d.fields.Month = MonthRef{Year: n, MonthNum: d.fields.Month.MonthNum}
		case "month_num":
			n, err := parseInt(name, value)
			if err != nil {
				return err
			}
			if n != 0 && !entity.ValidMonthNum(n) {
				return errs.ErrInvalidMonth
			}
			d.fields.Month = MonthRef{Year: d.fields.Month.Year, MonthNum: n}
		default:
			return unknownField(name)
		}

		return nil
	})
}

func (d *JourneyDraft) setMonthID(value string) error {
	if value == "" {
		d.fields.Month = MonthRef{}
		return nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: month_id: %w", errs.ErrInvalidValue, err)
	}
	d.fields.Month = MonthRef{ID: id}

	return nil
}

// setDate accepts YYYY-MM (a month picker value) or a full YYYY-MM-DD date.
func (d *JourneyDraft) setDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		d.fields.Month = MonthRef{}
		return nil
	}

	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err = time.Parse(layout, value); err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%w: date %q", errs.ErrInvalidValue, value)
	}
	d.fields.Month = MonthRef{Year: t.Year(), MonthNum: int(t.Month())}

	return nil
}

func parseInt(name, value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q", errs.ErrInvalidValue, name, value)
	}

	return n, nil
}

func (d *JourneyDraft) slot(name string) (*Slot, error) {
	switch name {
	case SlotImage1:
		return &d.image1, nil
	case SlotImage2:
		return &d.image2, nil
	default:
		return nil, unknownSlot(name)
	}
}

func (d *JourneyDraft) StageFile(name string, f *entity.Upload) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}

		return s.Stage(f)
	})
}

func (d *JourneyDraft) RemoveFile(name string) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}
		s.Remove()

		return nil
	})
}

func (d *JourneyDraft) RestoreFile(name string) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}

		return s.Restore()
	})
}

func (d *JourneyDraft) LoadMarkdown(filename, content string) error {
	return d.mutate(func() error {
		d.fields.MarkdownFile = filename
		d.fields.MarkdownContent = content

		return nil
	})
}

func (d *JourneyDraft) ClearMarkdown() error {
	return d.LoadMarkdown("", "")
}

func (d *JourneyDraft) IsDirty() bool {
	var dirty bool
	d.read(func() {
		dirty = d.fields != d.snapshot || d.image1.Dirty() || d.image2.Dirty()
	})

	return dirty
}

func (d *JourneyDraft) Missing() []string {
	var missing []string

	d.read(func() {
		f := d.fields
		if blank(f.Title) {
			missing = append(missing, "title")
		}
		if blank(f.Description) {
			missing = append(missing, "description")
		}
		if blank(f.Action) {
			missing = append(missing, "action")
		}
		if blank(f.TypeIcon1) {
			missing = append(missing, "type_icon1")
		}
		if !f.Month.Set() {
			missing = append(missing, "month")
		}
	})

	return missing
}

func (d *JourneyDraft) View() View {
	v := View{
		Kind:     entity.KindJourney,
		EntityID: idPtr(d.original.ID),
		Dirty:    d.IsDirty(),
		Missing:  d.Missing(),
	}

	d.read(func() {
		v.Fields = d.fields
		v.Slots = []SlotView{
			d.image1.view(SlotImage1),
			d.image2.view(SlotImage2),
		}
		v.Saving = d.saving
	})

	return v
}
