package v1

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/gofiber/fiber/v2"
)

type uploadError struct {
	code int
	msg  string
}

// readFile loads the multipart "file" field into memory.
func readFile(ctx *fiber.Ctx) ([]byte, string, string, *uploadError) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", "", &uploadError{http.StatusBadRequest, "file is required"}
	}

	if file.Size == 0 {
		return nil, "", "", &uploadError{http.StatusBadRequest, "file is empty"}
	}

	if file.Size > validate.MaxFileSize {
		return nil, "", "", &uploadError{http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize)}
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", "", &uploadError{http.StatusInternalServerError, "problems with opening the file"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", &uploadError{http.StatusInternalServerError, "problems with reading the file"}
	}

	return data, file.Filename, file.Header.Get("Content-Type"), nil
}

func readImage(ctx *fiber.Ctx) (*entity.Upload, *uploadError) {
	data, name, contentType, uerr := readFile(ctx)
	if uerr != nil {
		return nil, uerr
	}

	if !validate.AllowedContentTypes[contentType] {
		return nil, &uploadError{http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, gif, bmp, tiff"}
	}

	return &entity.Upload{Filename: name, ContentType: contentType, Data: data}, nil
}

func readMarkdown(ctx *fiber.Ctx) (string, string, *uploadError) {
	data, name, _, uerr := readFile(ctx)
	if uerr != nil {
		return "", "", uerr
	}

	if !validate.AllowedMarkdownExtensions[strings.ToLower(filepath.Ext(name))] {
		return "", "", &uploadError{http.StatusUnsupportedMediaType, "unsupported file extension. Allowed: .md, .markdown"}
	}

	return name, string(data), nil
}
