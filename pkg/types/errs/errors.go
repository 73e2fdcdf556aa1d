package errs

import (
	"errors"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")

	// save / delete workflow
	ErrValidation     = errors.New("required fields are missing")
	ErrUpload         = errors.New("blob upload failed")
	ErrRecordWrite    = errors.New("record write failed")
	ErrRecordDelete   = errors.New("record delete failed")
	ErrMonthResolve   = errors.New("month resolution failed")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrDraftConsumed  = errors.New("form was already saved or discarded")

	// staged edits
	ErrUnknownField         = errors.New("unknown field")
	ErrInvalidValue         = errors.New("invalid field value")
	ErrUnknownSlot          = errors.New("unknown asset slot")
	ErrInvalidTransition    = errors.New("invalid slot transition")
	ErrUnsupportedImage     = errors.New("unsupported image")
	ErrUnknownKind          = errors.New("unknown entity kind")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDiscardWhileSaving   = errors.New("cannot discard a form while it is being saved")
	ErrFormNotFound         = errors.New("form not found")
	ErrInvalidMonth         = errors.New("month_num must be between 1 and 12")
	ErrInvalidFilename      = errors.New("filename can only contain letters, numbers, hyphens, and underscores")
)

// ValidationError lists the required fields that resolved blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
