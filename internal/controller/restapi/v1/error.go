package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// statusOf maps use-case errors onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrRecordNotFound), errors.Is(err, errs.ErrFormNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrSaveInProgress),
		errors.Is(err, errs.ErrDraftConsumed),
		errors.Is(err, errs.ErrConfirmationRequired):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDiscardWhileSaving):
		return http.StatusLocked
	case errors.Is(err, errs.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errs.ErrUnknownField),
		errors.Is(err, errs.ErrInvalidValue),
		errors.Is(err, errs.ErrUnknownSlot),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrUnknownKind),
		errors.Is(err, errs.ErrInvalidMonth),
		errors.Is(err, errs.ErrInvalidFilename):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpload), errors.Is(err, errs.ErrRecordWrite), errors.Is(err, errs.ErrMonthResolve):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// useCaseError writes err with the status it maps to. Server side failures
// are logged and their details kept out of the body.
func (r *V1) useCaseError(ctx *fiber.Ctx, err error, op string, messages []response.Message) error {
	code := statusOf(err)

	resp := response.Error{Error: err.Error(), Messages: messages}

	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		resp.Error = errs.ErrValidation.Error()
		resp.Fields = verr.Fields
	}

	if code >= http.StatusInternalServerError {
		r.logger.Error(err, "restapi - v1 - "+op)
		resp.Error = http.StatusText(code)
	}

	return ctx.Status(code).JSON(resp)
}
