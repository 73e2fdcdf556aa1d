package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/disintegration/imaging"
)

const (
	_defaultMaxWidth  = 1920
	_defaultMaxHeight = 1920
)

type ImageProcessor struct {
	maxWidth  int
	maxHeight int
}

func New(maxWidth, maxHeight int) *ImageProcessor {
	if maxWidth <= 0 {
		maxWidth = _defaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = _defaultMaxHeight
	}

	return &ImageProcessor{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// Prepare decodes the file, records its dimensions and re-encodes it with
// Fit when it exceeds the bounds. Small images keep their original bytes.
func (p *ImageProcessor) Prepare(ctx context.Context, file *entity.Upload) (*entity.Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - Prepare: %w", err)
	}

	format, err := formatOf(file)
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Prepare - formatOf: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Prepare - imaging.Decode: %w: %w", errs.ErrUnsupportedImage, err)
	}

	res := &entity.Upload{
		Filename:    file.Filename,
		ContentType: contentTypes[format],
		Data:        file.Data,
	}

	b := img.Bounds()
	if b.Dx() > p.maxWidth || b.Dy() > p.maxHeight {
		img = imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

		res.Data, err = encode(img, format)
		if err != nil {
			return nil, fmt.Errorf("ImageProcessor - Prepare - encode: %w", err)
		}
		b = img.Bounds()
	}

	res.Width, res.Height = b.Dx(), b.Dy()

	return res, nil
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

func formatOf(file *entity.Upload) (imaging.Format, error) {
	switch strings.ToLower(file.ContentType) {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG, nil
	case "image/png":
		return imaging.PNG, nil
	case "image/gif":
		return imaging.GIF, nil
	case "image/tiff":
		return imaging.TIFF, nil
	case "image/bmp":
		return imaging.BMP, nil
	}

	f, err := imaging.FormatFromFilename(file.Filename)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedImage, file.Filename)
	}

	return f, nil
}

func encode(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - encode - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
