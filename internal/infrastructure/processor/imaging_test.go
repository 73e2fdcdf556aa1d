package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()

	img := imaging.New(w, h, color.NRGBA{R: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return buf.Bytes()
}

func TestPrepare_KeepsSmallImage(t *testing.T) {
	p := New(100, 100)
	data := pngOf(t, 40, 20)

	res, err := p.Prepare(context.Background(), &entity.Upload{Filename: "a.png", ContentType: "image/png", Data: data})
	require.NoError(t, err)

	assert.Equal(t, data, res.Data)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 20, res.Height)
	assert.Equal(t, "image/png", res.ContentType)
}

func TestPrepare_DownscalesLargeImage(t *testing.T) {
	p := New(100, 100)

	res, err := p.Prepare(context.Background(), &entity.Upload{Filename: "wide.png", Data: pngOf(t, 400, 200)})
	require.NoError(t, err)

	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)

	img, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestPrepare_RejectsGarbage(t *testing.T) {
	p := New(0, 0)

	_, err := p.Prepare(context.Background(), &entity.Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("nope")})
	require.ErrorIs(t, err, errs.ErrUnsupportedImage)

	_, err = p.Prepare(context.Background(), &entity.Upload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("x")})
	require.ErrorIs(t, err, errs.ErrUnsupportedImage)
}
