package draft

import (
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/google/uuid"
)

const SlotImage = "image"

type ProjectFields struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	MarkdownFile    string `json:"markdown_file"`
	MarkdownContent string `json:"markdown_content"`
	ToolIcon1       string `json:"tool_icon1"`
	ToolIcon2       string `json:"tool_icon2"`
}

type ProjectDraft struct {
	base

	original entity.Project
	snapshot ProjectFields
	fields   ProjectFields
	image    Slot
}

func NewProject() *ProjectDraft {
	return &ProjectDraft{}
}

// EditProject opens a draft over a persisted project and freezes it as the
// snapshot dirty tracking compares against.
func EditProject(p entity.Project) *ProjectDraft {
	f := projectFields(p)

	return &ProjectDraft{
		original: p,
		snapshot: f,
		fields:   f,
		image:    NewSlot(p.Image),
	}
}

func projectFields(p entity.Project) ProjectFields {
	return ProjectFields{
		Title:           p.Title,
		Slug:            p.Slug,
		Date:            p.Date,
		Description:     p.Description,
		MarkdownFile:    p.MarkdownFile,
		MarkdownContent: p.MarkdownContent,
		ToolIcon1:       p.ToolIcon1,
		ToolIcon2:       p.ToolIcon2,
	}
}

func (d *ProjectDraft) Kind() entity.Kind {
	return entity.KindProject
}

func (d *ProjectDraft) EntityID() (uuid.UUID, bool) {
	return entityID(d.original.ID)
}

// Original is the snapshot the draft was opened from.
func (d *ProjectDraft) Original() entity.Project {
	return d.original
}

func (d *ProjectDraft) Fields() ProjectFields {
	var f ProjectFields
	d.read(func() { f = d.fields })

	return f
}

func (d *ProjectDraft) Image() Slot {
	var s Slot
	d.read(func() { s = d.image })

	return s
}

// SetField assigns one plain field. Setting the title regenerates the slug.
func (d *ProjectDraft) SetField(name, value string) error {
	return d.mutate(func() error {
		switch name {
		case "title":
			d.fields.Title = value
			d.fields.Slug = GenerateSlug(value)
		case "slug":
			d.fields.Slug = value
		case "date":
			d.fields.Date = value
		case "description":
			d.fields.Description = value
		case "markdown_file":
			d.fields.MarkdownFile = value
		case "markdown_content":
			d.fields.MarkdownContent = value
		case "tool_icon1":
			d.fields.ToolIcon1 = value
		case "tool_icon2":
			d.fields.ToolIcon2 = value
		default:
			return unknownField(name)
		}

		return nil
	})
}

func (d *ProjectDraft) slot(name string) (*Slot, error) {
	if name != SlotImage {
		return nil, unknownSlot(name)
	}

	return &d.image, nil
}

func (d *ProjectDraft) StageFile(name string, f *entity.Upload) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}

		return s.Stage(f)
	})
}

func (d *ProjectDraft) RemoveFile(name string) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}
		s.Remove()

		return nil
	})
}

func (d *ProjectDraft) RestoreFile(name string) error {
	return d.mutate(func() error {
		s, err := d.slot(name)
		if err != nil {
			return err
		}

		return s.Restore()
	})
}

func (d *ProjectDraft) LoadMarkdown(filename, content string) error {
	return d.mutate(func() error {
		d.fields.MarkdownFile = filename
		d.fields.MarkdownContent = content

		return nil
	})
}

func (d *ProjectDraft) ClearMarkdown() error {
	return d.LoadMarkdown("", "")
}

func (d *ProjectDraft) IsDirty() bool {
	var dirty bool
	d.read(func() { dirty = d.fields != d.snapshot || d.image.Dirty() })

	return dirty
}

func (d *ProjectDraft) Missing() []string {
	var missing []string

	d.read(func() {
		f := d.fields
		for _, c := range []struct {
			name  string
			blank bool
		}{
			{"title", blank(f.Title)},
			{"date", blank(f.Date)},
			{"description", blank(f.Description)},
			{"markdown_content", blank(f.MarkdownContent)},
			{"tool_icon1", blank(f.ToolIcon1)},
			{SlotImage, !d.image.Present()},
		} {
			if c.blank {
				missing = append(missing, c.name)
			}
		}
	})

	return missing
}

func (d *ProjectDraft) View() View {
	v := View{
		Kind:     entity.KindProject,
		EntityID: idPtr(d.original.ID),
		Dirty:    d.IsDirty(),
		Missing:  d.Missing(),
	}

	d.read(func() {
		v.Fields = d.fields
		v.Slots = []SlotView{d.image.view(SlotImage)}
		v.Saving = d.saving
	})

	return v
}
