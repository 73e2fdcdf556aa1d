// Package images backs the image browser: a flat view over the blob store
// independent of any record.
package images

import (
	"context"
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure"
	"github.com/andreyxaxa/portfolio-dashboard/internal/repo"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
)

// RootFolder selects the bucket root in the browser.
const RootFolder = "root"

var validFilename = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type UseCase struct {
	blobs     repo.BlobRepo
	processor infrastructure.ImageProcessor

	logger logger.Interface
}

func New(blobs repo.BlobRepo, p infrastructure.ImageProcessor, l logger.Interface) *UseCase {
	return &UseCase{
		blobs:     blobs,
		processor: p,
		logger:    l,
	}
}

func (uc *UseCase) List(ctx context.Context, folder string) ([]entity.BlobMetadata, error) {
	items, err := uc.blobs.List(ctx, normalizeFolder(folder))
	if err != nil {
		return nil, fmt.Errorf("ImagesUseCase - List - uc.blobs.List: %w", err)
	}

	return items, nil
}

// Upload stores file under a caller-chosen name. The extension comes from the
// uploaded file, falling back to its content type.
func (uc *UseCase) Upload(ctx context.Context, folder, filename string, file *entity.Upload) (entity.AssetRef, error) {
	if !validFilename.MatchString(filename) {
		return entity.AssetRef{}, fmt.Errorf("ImagesUseCase - Upload - %q: %w", filename, errs.ErrInvalidFilename)
	}

	prepared, err := uc.processor.Prepare(ctx, file)
	if err != nil {
		return entity.AssetRef{}, fmt.Errorf("ImagesUseCase - Upload - uc.processor.Prepare: %w", err)
	}

	key := filename + extension(prepared)
	if f := normalizeFolder(folder); f != "" {
		key = f + "/" + key
	}

	ref, err := uc.blobs.Put(ctx, key, prepared)
	if err != nil {
		return entity.AssetRef{}, fmt.Errorf("ImagesUseCase - Upload - uc.blobs.Put: %w", err)
	}

	uc.logger.Info("image uploaded, asset=%s", ref.AssetID)

	return ref, nil
}

func (uc *UseCase) Delete(ctx context.Context, assetID string) (bool, error) {
	deleted, err := uc.blobs.Delete(ctx, assetID)
	if err != nil {
		return false, fmt.Errorf("ImagesUseCase - Delete - uc.blobs.Delete: %w", err)
	}

	if !deleted {
		uc.logger.Warn("image not found, asset=%s", assetID)
	}

	return deleted, nil
}

func normalizeFolder(folder string) string {
	folder = strings.Trim(folder, "/ ")
	if folder == RootFolder {
		return ""
	}

	return folder
}

func extension(f *entity.Upload) string {
	if ext := strings.ToLower(path.Ext(f.Filename)); ext != "" {
		return ext
	}

	if exts, _ := mime.ExtensionsByType(f.ContentType); len(exts) > 0 {
		return exts[0]
	}

	return ""
}
