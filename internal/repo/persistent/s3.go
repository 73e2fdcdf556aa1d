package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9_-]+`)

type BlobRepo struct {
	*s3client.S3Client
	publicURL string
}

// NewBlobRepo serves objects of the client's bucket under publicURL.
func NewBlobRepo(s3c *s3client.S3Client, publicURL string) *BlobRepo {
	return &BlobRepo{s3c, strings.TrimRight(publicURL, "/")}
}

func (r *BlobRepo) Upload(ctx context.Context, folder string, file *entity.Upload) (entity.AssetRef, error) {
	ref, err := r.Put(ctx, ObjectKey(folder, file.Filename, file.ContentType), file)
	if err != nil {
		return entity.AssetRef{}, fmt.Errorf("BlobRepo - Upload - r.Put: %w", err)
	}

	return ref, nil
}

func (r *BlobRepo) Put(ctx context.Context, key string, file *entity.Upload) (entity.AssetRef, error) {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
	})
	if err != nil {
		return entity.AssetRef{}, fmt.Errorf("BlobRepo - Put - r.Client.PutObject: %w", err)
	}

	return entity.AssetRef{
		URL:              r.url(key),
		AssetID:          key,
		OriginalFilename: file.Filename,
	}, nil
}

func (r *BlobRepo) Delete(ctx context.Context, assetID string) (bool, error) {
	_, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("BlobRepo - Delete - r.Client.HeadObject: %w", err)
	}

	_, err = r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return false, fmt.Errorf("BlobRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return true, nil
}

// List returns the objects under folder, newest first. An empty folder
// lists the whole bucket.
func (r *BlobRepo) List(ctx context.Context, folder string) ([]entity.BlobMetadata, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(r.Bucket)}
	if folder != "" {
		input.Prefix = aws.String(strings.Trim(folder, "/") + "/")
	}

	res := make([]entity.BlobMetadata, 0)

	p := s3.NewListObjectsV2Paginator(r.Client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("BlobRepo - List - p.NextPage: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}

			res = append(res, entity.BlobMetadata{
				AssetID:   key,
				URL:       r.url(key),
				Folder:    FolderOf(key),
				Format:    strings.TrimPrefix(path.Ext(key), "."),
				Size:      aws.ToInt64(obj.Size),
				CreatedAt: aws.ToTime(obj.LastModified),
			})
		}
	}

	slices.SortFunc(res, func(a, b entity.BlobMetadata) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return res, nil
}

func (r *BlobRepo) url(key string) string {
	return r.publicURL + "/" + key
}

// ObjectKey builds folder/<uuid>-<name>.<ext> from an uploaded filename.
func ObjectKey(folder, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	name := SanitizeName(strings.TrimSuffix(filename, path.Ext(filename)))

	key := uuid.NewString()
	if name != "" {
		key += "-" + name
	}
	key += ext

	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}

	return key
}

func SanitizeName(name string) string {
	s := unsafeKeyChars.ReplaceAllString(strings.ToLower(name), "-")

	return strings.Trim(s, "-")
}

// FolderOf derives the folder from an asset id; root level objects have none.
func FolderOf(assetID string) string {
	dir := path.Dir(assetID)
	if dir == "." {
		return ""
	}

	return dir
}
