package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"realty-inventory/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageProvider reads inventory folders from an S3/MinIO bucket.
// A folder id is an object key prefix ("like-house/" or "developers/axis").
type StorageProvider struct {
	client storage.Client
	bucket string
}

// NewStorageProvider creates a provider over the given bucket.
func NewStorageProvider(client storage.Client, bucket string) *StorageProvider {
	return &StorageProvider{client: client, bucket: bucket}
}

// Name returns the backend name.
func (p *StorageProvider) Name() string {
	return ProviderStorage
}

// ListFiles lists the objects directly under the folder prefix, in key order.
// A prefix with no objects at all, not even its "folder/" marker, does not exist.
func (p *StorageProvider) ListFiles(ctx context.Context, folderID string) ([]FileInfo, error) {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return nil, classifyStorageError(err, ErrFolderNotFound)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %s does not exist", ErrFolderNotFound, p.bucket)
	}

	prefix := folderPrefix(folderID)
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var files []FileInfo
	seen := 0
	for obj := range p.client.ListObjects(ctx, p.bucket, opts) {
		if obj.Err != nil {
			return nil, classifyStorageError(obj.Err, ErrFolderNotFound)
		}
		seen++
		// Sub-folder markers
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		files = append(files, FileInfo{
			ID:         obj.Key,
			Name:       path.Base(obj.Key),
			MimeType:   obj.ContentType,
			ModifiedAt: obj.LastModified,
			Version:    strings.Trim(obj.ETag, `"`),
		})
	}
	if seen == 0 {
		return nil, fmt.Errorf("%w: no objects under %s/%s", ErrFolderNotFound, p.bucket, prefix)
	}
	return files, nil
}

// Download reads an object together with its content type.
func (p *StorageProvider) Download(ctx context.Context, fileID string) (*Blob, error) {
	info, err := p.client.StatObject(ctx, p.bucket, fileID, minio.StatObjectOptions{})
	if err != nil {
		return nil, classifyStorageError(err, ErrFileNotFound)
	}

	rc, err := p.client.GetObject(ctx, p.bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyStorageError(err, ErrFileNotFound)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, classifyStorageError(err, ErrFileNotFound)
	}

	return &Blob{
		FileID:      fileID,
		Name:        path.Base(fileID),
		ContentType: info.ContentType,
		Data:        data,
	}, nil
}

func folderPrefix(folderID string) string {
	prefix := strings.TrimPrefix(folderID, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// classifyStorageError maps S3 error responses onto the package taxonomy.
// notFound is the sentinel used for 404s (folder for listings, file for downloads).
func classifyStorageError(err error, notFound error) error {
	resp := minio.ToErrorResponse(err)

	switch resp.Code {
	case "NoSuchBucket", "AccessDenied", "AllAccessDisabled":
		return fmt.Errorf("%w: %w", ErrFolderNotFound, err)
	case "NoSuchKey":
		return fmt.Errorf("%w: %w", notFound, err)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		return fmt.Errorf("%w: %w", ErrAuthExpired, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", notFound, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrAuthExpired, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrFolderNotFound, err)
	}

	// Timeouts, throttling (SlowDown, 503) and network errors stay transient.
	return err
}
