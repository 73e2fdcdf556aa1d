package v1

import (
	"net/http"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary 	Open form
// @Description Opens an edit session: empty when entity_id is omitted, else loaded from the record
// @Tags 		forms
// @Accept 		json
// @Produce 	json
// @Param 		body body request.OpenForm true "Kind and optional entity id"
// @Success 	201 {object} usecase.Form
// @Failure 	400 {object} response.Error
// @Failure 	404 {object} response.Error "Record not found"
// @Router 		/v1/forms [post]
func (r *V1) openForm(ctx *fiber.Ctx) error {
	var req request.OpenForm
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	var id *uuid.UUID
	if req.EntityID != "" {
		parsed, err := uuid.Parse(req.EntityID)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "invalid entity_id")
		}
		id = &parsed
	}

	f, err := r.forms.Open(ctx.UserContext(), entity.Kind(req.Kind), id)
	if err != nil {
		return r.useCaseError(ctx, err, "openForm", nil)
	}

	return ctx.Status(http.StatusCreated).JSON(f)
}

// @Summary 	Get form
// @Tags 		forms
// @Produce 	json
// @Param 		id path string true "Form ID(uuid)"
// @Success 	200 {object} usecase.Form
// @Failure 	404 {object} response.Error "Form not found"
// @Router 		/v1/forms/{id} [get]
func (r *V1) getForm(ctx *fiber.Ctx) error {
	return r.formOp(ctx, "getForm", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.Get(ctx.UserContext(), id)
	})
}

// @Summary 	Set form fields
// @Tags 		forms
// @Accept 		json
// @Produce 	json
// @Param 		id 	 path string 			true "Form ID(uuid)"
// @Param 		body body request.SetFields true "Field values by name"
// @Success 	200 {object} usecase.Form
// @Failure 	400 {object} response.Error "Unknown field or invalid value"
// @Failure 	409 {object} response.Error "Save in progress"
// @Router 		/v1/forms/{id} [patch]
func (r *V1) setFormFields(ctx *fiber.Ctx) error {
	var req request.SetFields
	if err := ctx.BodyParser(&req); err != nil || len(req.Fields) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "fields are required")
	}

	return r.formOp(ctx, "setFormFields", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.SetFields(ctx.UserContext(), id, req.Fields)
	})
}

// @Summary 	Stage image
// @Description Stages an image for a slot. Nothing is uploaded until submit.
// @Tags 		forms
// @Accept 		mpfd
// @Produce 	json
// @Param 		id 	 path 	  string true "Form ID(uuid)"
// @Param 		slot path 	  string true "Slot" Enums(image, image_1, image_2)
// @Param 		file formData file 	 true "Image file"
// @Success 	200 {object} usecase.Form
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Router 		/v1/forms/{id}/slots/{slot} [put]
func (r *V1) stageFile(ctx *fiber.Ctx) error {
	file, uerr := readImage(ctx)
	if uerr != nil {
		return errorResponse(ctx, uerr.code, uerr.msg)
	}

	return r.formOp(ctx, "stageFile", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.StageFile(ctx.UserContext(), id, ctx.Params("slot"), file)
	})
}

// @Summary 	Remove image
// @Tags 		forms
// @Produce 	json
// @Param 		id 	 path string true "Form ID(uuid)"
// @Param 		slot path string true "Slot"
// @Success 	200 {object} usecase.Form
// @Router 		/v1/forms/{id}/slots/{slot} [delete]
func (r *V1) removeFile(ctx *fiber.Ctx) error {
	return r.formOp(ctx, "removeFile", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.RemoveFile(ctx.UserContext(), id, ctx.Params("slot"))
	})
}

// @Summary 	Restore removed image
// @Tags 		forms
// @Produce 	json
// @Param 		id 	 path string true "Form ID(uuid)"
// @Param 		slot path string true "Slot"
// @Success 	200 {object} usecase.Form
// @Failure 	400 {object} response.Error "Slot was not removed"
// @Router 		/v1/forms/{id}/slots/{slot}/restore [post]
func (r *V1) restoreFile(ctx *fiber.Ctx) error {
	return r.formOp(ctx, "restoreFile", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.RestoreFile(ctx.UserContext(), id, ctx.Params("slot"))
	})
}

// @Summary 	Load markdown file
// @Tags 		forms
// @Accept 		mpfd
// @Produce 	json
// @Param 		id 	 path 	  string true "Form ID(uuid)"
// @Param 		file formData file 	 true "Markdown file"
// @Success 	200 {object} usecase.Form
// @Router 		/v1/forms/{id}/markdown [put]
func (r *V1) loadMarkdown(ctx *fiber.Ctx) error {
	name, content, uerr := readMarkdown(ctx)
	if uerr != nil {
		return errorResponse(ctx, uerr.code, uerr.msg)
	}

	return r.formOp(ctx, "loadMarkdown", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.LoadMarkdown(ctx.UserContext(), id, name, content)
	})
}

// @Summary 	Clear markdown
// @Tags 		forms
// @Produce 	json
// @Param 		id path string true "Form ID(uuid)"
// @Success 	200 {object} usecase.Form
// @Router 		/v1/forms/{id}/markdown [delete]
func (r *V1) clearMarkdown(ctx *fiber.Ctx) error {
	return r.formOp(ctx, "clearMarkdown", func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error) {
		return r.forms.ClearMarkdown(ctx.UserContext(), id)
	})
}

// @Summary 	Submit form
// @Description Uploads staged images, writes the record, then deletes superseded images
// @Tags 		forms
// @Produce 	json
// @Param 		id path string true "Form ID(uuid)"
// @Success 	200 {object} response.Submit
// @Failure 	409 {object} response.Error "Save in progress"
// @Failure 	422 {object} response.Error "Required fields missing"
// @Failure 	502 {object} response.Error "Upload or record write failed"
// @Router 		/v1/forms/{id}/submit [post]
func (r *V1) submitForm(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	n := &notifier{}

	res, err := r.forms.Submit(ctx.UserContext(), id, n)
	if err != nil {
		return r.useCaseError(ctx, err, "submitForm", n.messages)
	}

	return ctx.JSON(response.Submit{Result: res, Messages: n.messages})
}

// @Summary 	Discard form
// @Description Closes the form. Unsaved changes need confirm=true.
// @Tags 		forms
// @Param 		id 		path  string true  "Form ID(uuid)"
// @Param		confirm query bool 	 false "Discard unsaved changes"
// @Success		204 "Discarded"
// @Failure 	409 {object} response.Error "Confirmation required"
// @Failure 	423 {object} response.Error "Save in progress"
// @Router 		/v1/forms/{id} [delete]
func (r *V1) discardForm(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	if err := r.forms.Discard(ctx.UserContext(), id, confirmerFrom(ctx)); err != nil {
		return r.useCaseError(ctx, err, "discardForm", nil)
	}

	return ctx.SendStatus(http.StatusNoContent)
}

func (r *V1) formOp(ctx *fiber.Ctx, op string, f func(ctx *fiber.Ctx, id uuid.UUID) (*usecase.Form, error)) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	form, err := f(ctx, id)
	if err != nil {
		return r.useCaseError(ctx, err, op, nil)
	}

	return ctx.JSON(form)
}
