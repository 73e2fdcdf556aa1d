package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/portfolio-dashboard/internal/draft"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	usecase.ContentUseCase

	project  *entity.Project
	deleted  []uuid.UUID
	filter   usecase.JourneyFilter
	getErr   error
	years    []int
	monthArg *int
}

func (f *fakeContent) GetProject(context.Context, uuid.UUID) (*entity.Project, error) {
	return f.project, f.getErr
}

func (f *fakeContent) DeleteProject(_ context.Context, id uuid.UUID, n usecase.Notifier) error {
	n.Loading("Deleting project...")
	f.deleted = append(f.deleted, id)
	n.Success("The project was deleted")

	return nil
}

func (f *fakeContent) ListJourney(_ context.Context, filter usecase.JourneyFilter) ([]entity.JourneyEntry, error) {
	f.filter = filter

	return []entity.JourneyEntry{}, nil
}

func (f *fakeContent) ListMonths(_ context.Context, year *int) ([]entity.Month, error) {
	f.monthArg = year

	return []entity.Month{}, nil
}

func (f *fakeContent) AvailableYears(context.Context) ([]int, error) {
	return f.years, nil
}

type fakeForms struct {
	usecase.FormsUseCase

	staged    *entity.Upload
	slot      string
	fields    map[string]string
	submitErr error
	discard   error
	confirmed bool
	markdown  string
}

func (f *fakeForms) form(id uuid.UUID) *usecase.Form {
	return &usecase.Form{ID: id, View: draft.NewProject().View()}
}

func (f *fakeForms) Open(_ context.Context, kind entity.Kind, _ *uuid.UUID) (*usecase.Form, error) {
	if !kind.Valid() {
		return nil, errs.ErrUnknownKind
	}

	return f.form(uuid.New()), nil
}

func (f *fakeForms) SetFields(_ context.Context, id uuid.UUID, fields map[string]string) (*usecase.Form, error) {
	f.fields = fields
	if _, ok := fields["colour"]; ok {
		return nil, errs.ErrUnknownField
	}

	return f.form(id), nil
}

func (f *fakeForms) StageFile(_ context.Context, id uuid.UUID, slot string, file *entity.Upload) (*usecase.Form, error) {
	f.slot, f.staged = slot, file

	return f.form(id), nil
}

func (f *fakeForms) LoadMarkdown(_ context.Context, id uuid.UUID, _, content string) (*usecase.Form, error) {
	f.markdown = content

	return f.form(id), nil
}

func (f *fakeForms) Submit(_ context.Context, _ uuid.UUID, n usecase.Notifier) (*usecase.SubmitResult, error) {
	n.Loading("Saving project...")
	if f.submitErr != nil {
		n.Error("Failed")
		return nil, f.submitErr
	}
	n.Success("Project saved")

	return &usecase.SubmitResult{Kind: entity.KindProject, Project: &entity.Project{Title: "Site"}}, nil
}

func (f *fakeForms) Discard(ctx context.Context, _ uuid.UUID, c usecase.Confirmer) error {
	if f.discard != nil {
		return f.discard
	}

	ok, err := c.Confirm(ctx, usecase.Prompt{})
	if err != nil {
		return err
	}
	f.confirmed = ok
	if !ok {
		return errs.ErrConfirmationRequired
	}

	return nil
}

type fakeImages struct {
	usecase.ImagesUseCase

	deleted string
	exists  bool
}

func (f *fakeImages) Delete(_ context.Context, assetID string) (bool, error) {
	f.deleted = assetID

	return f.exists, nil
}

func (f *fakeImages) Upload(_ context.Context, folder, filename string, file *entity.Upload) (entity.AssetRef, error) {
	if filename == "bad name" {
		return entity.AssetRef{}, errs.ErrInvalidFilename
	}
	id := folder + "/" + filename + ".png"

	return entity.AssetRef{URL: "https://cdn/" + id, AssetID: id, OriginalFilename: file.Filename}, nil
}

func newTestApp(c *fakeContent, f *fakeForms, i *fakeImages) *fiber.App {
	app := fiber.New()
	NewRoutes(app.Group("/v1"), c, f, i, logger.NewWithWriter("error", io.Discard))

	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func jsonRequest(method, target string, v any) *http.Request {
	b, _ := json.Marshal(v)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func multipartRequest(t *testing.T, method, target, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func TestDeleteProject_RequiresConfirmation(t *testing.T) {
	c := &fakeContent{}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})
	id := uuid.New()

	resp, _ := do(t, app, httptest.NewRequest(http.MethodDelete, "/v1/projects/"+id.String(), nil))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, c.deleted)

	resp, body := do(t, app, httptest.NewRequest(http.MethodDelete, "/v1/projects/"+id.String()+"?confirm=true", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []uuid.UUID{id}, c.deleted)

	var res response.Deleted
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "success", res.Messages[1].Level)
}

func TestGetProject_Errors(t *testing.T) {
	c := &fakeContent{getErr: errs.ErrRecordNotFound}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/v1/projects/nope", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/v1/projects/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadProjectMarkdown(t *testing.T) {
	c := &fakeContent{project: &entity.Project{Title: "My Great Project!", MarkdownContent: "# Hello"}}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/v1/projects/"+uuid.NewString()+"/markdown", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# Hello", string(body))
	assert.Equal(t, `attachment; filename="my_great_project_.md"`, resp.Header.Get("Content-Disposition"))
}

func TestListJourney_Filters(t *testing.T) {
	c := &fakeContent{}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})
	monthID := uuid.New()

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/v1/journey?month_id="+monthID.String(), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, c.filter.MonthID)
	assert.Equal(t, monthID, *c.filter.MonthID)
	assert.Nil(t, c.filter.Year)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/v1/journey?year=2024", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, c.filter.Year)
	assert.Equal(t, 2024, *c.filter.Year)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/v1/journey?month_id=x", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonths(t *testing.T) {
	c := &fakeContent{years: []int{2025, 2024}}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/v1/months/years", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"years":[2025,2024]}`, string(body))

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/v1/months?year=2025", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, c.monthArg)
	assert.Equal(t, 2025, *c.monthArg)
}

func TestForms_OpenAndSetFields(t *testing.T) {
	f := &fakeForms{}
	app := newTestApp(&fakeContent{}, f, &fakeImages{})

	resp, body := do(t, app, jsonRequest(http.MethodPost, "/v1/forms", map[string]string{"kind": "project"}))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var form usecase.Form
	require.NoError(t, json.Unmarshal(body, &form))
	assert.Equal(t, entity.KindProject, form.Kind)

	resp, _ = do(t, app, jsonRequest(http.MethodPost, "/v1/forms", map[string]string{"kind": "post"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	target := "/v1/forms/" + form.ID.String()

	resp, _ = do(t, app, jsonRequest(http.MethodPatch, target, map[string]any{"fields": map[string]string{"title": "Site"}}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"title": "Site"}, f.fields)

	resp, _ = do(t, app, jsonRequest(http.MethodPatch, target, map[string]any{"fields": map[string]string{"colour": "red"}}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForms_StageFile(t *testing.T) {
	f := &fakeForms{}
	app := newTestApp(&fakeContent{}, f, &fakeImages{})
	target := "/v1/forms/" + uuid.NewString() + "/slots/image_2"

	resp, _ := do(t, app, multipartRequest(t, http.MethodPut, target, "a.png", "image/png", []byte("png"), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image_2", f.slot)
	require.NotNil(t, f.staged)
	assert.Equal(t, "a.png", f.staged.Filename)
	assert.Equal(t, []byte("png"), f.staged.Data)

	resp, _ = do(t, app, multipartRequest(t, http.MethodPut, target, "a.txt", "text/plain", []byte("hi"), nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestForms_LoadMarkdown(t *testing.T) {
	f := &fakeForms{}
	app := newTestApp(&fakeContent{}, f, &fakeImages{})
	target := "/v1/forms/" + uuid.NewString() + "/markdown"

	resp, _ := do(t, app, multipartRequest(t, http.MethodPut, target, "notes.md", "text/markdown", []byte("# Notes"), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# Notes", f.markdown)

	resp, _ = do(t, app, multipartRequest(t, http.MethodPut, target, "notes.txt", "text/plain", []byte("x"), nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestForms_SubmitStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"validation", &errs.ValidationError{Fields: []string{"title", "image"}}, http.StatusUnprocessableEntity},
		{"in progress", errs.ErrSaveInProgress, http.StatusConflict},
		{"upload", errs.ErrUpload, http.StatusBadGateway},
		{"write", errs.ErrRecordWrite, http.StatusBadGateway},
		{"gone", errs.ErrFormNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeContent{}, &fakeForms{submitErr: tt.err}, &fakeImages{})

			resp, body := do(t, app, httptest.NewRequest(http.MethodPost, "/v1/forms/"+uuid.NewString()+"/submit", nil))
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.err == nil {
				var res response.Submit
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, "Site", res.Result.Project.Title)
				return
			}

			var res response.Error
			require.NoError(t, json.Unmarshal(body, &res))
			assert.NotEmpty(t, res.Messages)
			if tt.want == http.StatusUnprocessableEntity {
				assert.Equal(t, []string{"title", "image"}, res.Fields)
			}
		})
	}
}

func TestForms_Discard(t *testing.T) {
	f := &fakeForms{}
	app := newTestApp(&fakeContent{}, f, &fakeImages{})
	target := "/v1/forms/" + uuid.NewString()

	resp, _ := do(t, app, httptest.NewRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, target+"?confirm=true", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, f.confirmed)

	f.discard = errs.ErrDiscardWhileSaving
	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, target+"?confirm=true", nil))
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
}

func TestImages(t *testing.T) {
	i := &fakeImages{}
	app := newTestApp(&fakeContent{}, &fakeForms{}, i)

	resp, body := do(t, app, multipartRequest(t, http.MethodPost, "/v1/images", "x.png", "image/png", []byte("png"),
		map[string]string{"filename": "hero", "folder": "misc"}))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `"asset_id":"misc/hero.png"`))

	resp, _ = do(t, app, multipartRequest(t, http.MethodPost, "/v1/images", "x.png", "image/png", []byte("png"),
		map[string]string{"filename": "bad name"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/v1/images/project_imgs/a.png", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "project_imgs/a.png", i.deleted)

	i.exists = true
	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/v1/images/project_imgs/a.png", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestStatusOf_InternalErrorsAreMasked(t *testing.T) {
	c := &fakeContent{getErr: errs.ErrRecordDelete}
	app := newTestApp(c, &fakeForms{}, &fakeImages{})

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/v1/projects/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, string(body))
}
