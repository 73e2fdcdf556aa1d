package draft

import (
	"testing"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedProject() entity.Project {
	return entity.Project{
		ID:              uuid.New(),
		Slug:            "my-project",
		Title:           "My Project",
		Date:            "2024-05",
		Description:     "desc",
		MarkdownContent: "# hi",
		ToolIcon1:       "go",
		Image:           entity.AssetRef{URL: "https://cdn/p.png", AssetID: "project_imgs/p"},
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := map[string]string{
		"My Project":         "my-project",
		"  Go   & Rust!  ":   "-go--rust-",
		"snake_case-Title 2": "snake_case-title-2",
		"":                   "",
	}

	for in, want := range tests {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestMarkdownFilename(t *testing.T) {
	assert.Equal(t, "my_project_2_0.md", MarkdownFilename("My Project 2.0"))
	assert.Equal(t, "a_b.md", MarkdownFilename("a -- b"))
	assert.Equal(t, "document.md", MarkdownFilename(""))
}

func TestProjectSetFieldTitleRegeneratesSlug(t *testing.T) {
	d := NewProject()

	require.NoError(t, d.SetField("title", "Hello World"))

	f := d.Fields()
	assert.Equal(t, "Hello World", f.Title)
	assert.Equal(t, "hello-world", f.Slug)
}

func TestProjectSetFieldUnknown(t *testing.T) {
	d := NewProject()

	err := d.SetField("image_2", "x")
	require.ErrorIs(t, err, errs.ErrUnknownField)
	require.ErrorIs(t, d.StageFile("image_2", upload("a.png")), errs.ErrUnknownSlot)
}

func TestProjectDirtyTracking(t *testing.T) {
	p := persistedProject()
	d := EditProject(p)
	assert.False(t, d.IsDirty())

	require.NoError(t, d.SetField("description", "changed"))
	assert.True(t, d.IsDirty())

	require.NoError(t, d.SetField("description", p.Description))
	assert.False(t, d.IsDirty(), "reverting the value clears dirtiness")

	require.NoError(t, d.RemoveFile(SlotImage))
	assert.True(t, d.IsDirty())

	require.NoError(t, d.RestoreFile(SlotImage))
	assert.False(t, d.IsDirty())
}

func TestNewProjectDirtyAgainstEmptyForm(t *testing.T) {
	d := NewProject()
	assert.False(t, d.IsDirty())

	require.NoError(t, d.SetField("tool_icon2", "x"))
	assert.True(t, d.IsDirty())
}

func TestProjectMissing(t *testing.T) {
	d := NewProject()
	assert.Equal(t,
		[]string{"title", "date", "description", "markdown_content", "tool_icon1", "image"},
		d.Missing())

	e := EditProject(persistedProject())
	assert.Empty(t, e.Missing())

	require.NoError(t, e.RemoveFile(SlotImage))
	assert.Equal(t, []string{"image"}, e.Missing())

	require.NoError(t, e.StageFile(SlotImage, upload("n.png")))
	assert.Empty(t, e.Missing())

	require.NoError(t, e.SetField("title", "   "))
	assert.Equal(t, []string{"title"}, e.Missing())
}

func TestSaveGuardBlocksMutation(t *testing.T) {
	d := EditProject(persistedProject())

	require.NoError(t, d.BeginSave())
	require.ErrorIs(t, d.BeginSave(), errs.ErrSaveInProgress)
	assert.True(t, d.Saving())

	require.ErrorIs(t, d.SetField("title", "x"), errs.ErrSaveInProgress)
	require.ErrorIs(t, d.RemoveFile(SlotImage), errs.ErrSaveInProgress)
	require.ErrorIs(t, d.ClearMarkdown(), errs.ErrSaveInProgress)

	d.EndSave(false)
	assert.False(t, d.Saving())
	assert.False(t, d.Consumed())
	require.NoError(t, d.SetField("title", "x"))
}

func TestConsumedDraftRefusesSaveAndMutation(t *testing.T) {
	d := NewJourney()

	require.NoError(t, d.BeginSave())
	d.EndSave(true)

	assert.False(t, d.Saving())
	assert.True(t, d.Consumed())
	require.ErrorIs(t, d.BeginSave(), errs.ErrDraftConsumed)
	require.ErrorIs(t, d.SetField("title", "x"), errs.ErrDraftConsumed)
	require.ErrorIs(t, d.StageFile(SlotImage1, upload("a.png")), errs.ErrDraftConsumed)

	// a later failed attempt never revives it
	d.EndSave(false)
	assert.True(t, d.Consumed())
}

func TestMarkdownLoadAndClear(t *testing.T) {
	d := NewProject()

	require.NoError(t, d.LoadMarkdown("notes.md", "# notes"))
	f := d.Fields()
	assert.Equal(t, "notes.md", f.MarkdownFile)
	assert.Equal(t, "# notes", f.MarkdownContent)

	require.NoError(t, d.ClearMarkdown())
	f = d.Fields()
	assert.Empty(t, f.MarkdownFile)
	assert.Empty(t, f.MarkdownContent)
}

func TestJourneyMonthReference(t *testing.T) {
	monthID := uuid.New()
	d := EditJourney(entity.JourneyEntry{ID: uuid.New(), MonthID: monthID})

	assert.True(t, d.Fields().Month.Resolved())

	require.NoError(t, d.SetField("date", "2024-03"))
	m := d.Fields().Month
	assert.False(t, m.Resolved(), "choosing a date clears the month id")
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, 3, m.MonthNum)

	require.NoError(t, d.SetField("month_num", "11"))
	assert.Equal(t, MonthRef{Year: 2024, MonthNum: 11}, d.Fields().Month)

	require.ErrorIs(t, d.SetField("month_num", "13"), errs.ErrInvalidMonth)
	require.ErrorIs(t, d.SetField("date", "March"), errs.ErrInvalidValue)

	require.NoError(t, d.SetField("month_id", monthID.String()))
	assert.Equal(t, MonthRef{ID: monthID}, d.Fields().Month)
}

func TestJourneyActionValidated(t *testing.T) {
	d := NewJourney()

	require.ErrorIs(t, d.SetField("action", "dreamed"), errs.ErrInvalidValue)
	require.NoError(t, d.SetField("action", string(entity.ActionShipped)))
	assert.Equal(t, "shipped", d.Fields().Action)
}

func TestJourneyMissing(t *testing.T) {
	d := NewJourney()
	assert.Equal(t, []string{"title", "description", "action", "type_icon1", "month"}, d.Missing())

	for name, value := range map[string]string{
		"title":       "t",
		"description": "d",
		"action":      "built",
		"type_icon1":  "i",
		"year":        "2025",
	} {
		require.NoError(t, d.SetField(name, value))
	}
	assert.Equal(t, []string{"month"}, d.Missing())

	require.NoError(t, d.SetField("month_num", "2"))
	assert.Empty(t, d.Missing())
}

func TestJourneySlotsAreIndependent(t *testing.T) {
	e := entity.JourneyEntry{
		ID:     uuid.New(),
		Image1: entity.AssetRef{URL: "u1", AssetID: "journey_imgs/1"},
		Image2: entity.AssetRef{URL: "u2", AssetID: "journey_imgs/2"},
	}
	d := EditJourney(e)

	require.NoError(t, d.RemoveFile(SlotImage1))
	require.NoError(t, d.StageFile(SlotImage2, upload("b.png")))

	s1, s2 := d.Slots()
	assert.Equal(t, Deleted, s1.State())
	assert.Equal(t, e.Image1, s1.Original())
	assert.Equal(t, Pending, s2.State())
	assert.Equal(t, e.Image2, s2.Original())
}

func TestViewReportsState(t *testing.T) {
	d := EditProject(persistedProject())
	require.NoError(t, d.StageFile(SlotImage, upload("new.png")))

	v := d.View()
	require.NotNil(t, v.EntityID)
	assert.Equal(t, entity.KindProject, v.Kind)
	assert.True(t, v.Dirty)
	assert.False(t, v.Saving)
	require.Len(t, v.Slots, 1)
	assert.Equal(t, "pending", v.Slots[0].State)
	assert.Equal(t, "new.png", v.Slots[0].PendingFilename)
}
