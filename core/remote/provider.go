package remote

import (
	"context"
	"time"
)

// FileInfo describes a file listed in a remote folder.
type FileInfo struct {
	ID         string
	Name       string
	MimeType   string
	ModifiedAt time.Time
	// Version changes whenever the file content changes (ETag, Drive version, modified time).
	Version string
}

// Blob is a downloaded file.
type Blob struct {
	FileID      string
	Name        string
	ContentType string
	Format      Format
	Data        []byte
}

// Provider lists and downloads files on one storage backend.
// Implementations classify permanent failures with the package sentinel errors.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	// ListFiles returns the files directly inside folderID in a stable order.
	ListFiles(ctx context.Context, folderID string) ([]FileInfo, error)
	// Download fetches the content of fileID.
	Download(ctx context.Context, fileID string) (*Blob, error)
}
