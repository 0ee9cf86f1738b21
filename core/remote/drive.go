package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const driveFolderMime = "application/vnd.google-apps.folder"

// DriveProvider reads inventory folders from Google Drive.
// Authentication is supplied by the caller through client options (token source,
// service account credentials); this provider never runs an authorization flow.
type DriveProvider struct {
	svc *drive.Service
}

// NewDriveProvider creates a Drive provider. opts must carry credentials, for example
// option.WithTokenSource.
func NewDriveProvider(ctx context.Context, opts ...option.ClientOption) (*DriveProvider, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveProvider{svc: svc}, nil
}

// NewDriveProviderFromTokenSource creates a Drive provider using an authenticated session.
func NewDriveProviderFromTokenSource(ctx context.Context, ts oauth2.TokenSource) (*DriveProvider, error) {
	return NewDriveProvider(ctx, option.WithTokenSource(ts))
}

// Name returns the backend name.
func (p *DriveProvider) Name() string {
	return ProviderDrive
}

// ListFiles lists the non-trashed files of a Drive folder ordered by name.
func (p *DriveProvider) ListFiles(ctx context.Context, folderID string) ([]FileInfo, error) {
	folder, err := p.svc.Files.Get(folderID).
		Fields("id, name, mimeType, trashed").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyDriveError(err, ErrFolderNotFound)
	}
	if folder.MimeType != driveFolderMime || folder.Trashed {
		return nil, fmt.Errorf("%w: %s is not an active folder", ErrFolderNotFound, folderID)
	}

	q := fmt.Sprintf("'%s' in parents and trashed = false", strings.ReplaceAll(folderID, "'", `\'`))
	call := p.svc.Files.List().
		Q(q).
		Fields("nextPageToken, files(id, name, mimeType, modifiedTime, version)").
		OrderBy("name").
		PageSize(200).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	var files []FileInfo
	err = call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			if f.MimeType == driveFolderMime {
				continue
			}
			files = append(files, driveFileInfo(f))
		}
		return nil
	})
	if err != nil {
		return nil, classifyDriveError(err, ErrFolderNotFound)
	}
	return files, nil
}

// Download fetches file content; native Google Sheets are exported as XLSX.
func (p *DriveProvider) Download(ctx context.Context, fileID string) (*Blob, error) {
	meta, err := p.svc.Files.Get(fileID).
		Fields("id, name, mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyDriveError(err, ErrFileNotFound)
	}

	var resp *http.Response
	contentType := meta.MimeType
	if meta.MimeType == MimeGoogleSheet {
		resp, err = p.svc.Files.Export(fileID, MimeXLSX).Context(ctx).Download()
		contentType = MimeXLSX
	} else {
		resp, err = p.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	}
	if err != nil {
		return nil, classifyDriveError(err, ErrFileNotFound)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Blob{
		FileID:      fileID,
		Name:        meta.Name,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func driveFileInfo(f *drive.File) FileInfo {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	version := f.ModifiedTime
	if f.Version > 0 {
		version = strconv.FormatInt(f.Version, 10)
	}
	return FileInfo{
		ID:         f.Id,
		Name:       f.Name,
		MimeType:   f.MimeType,
		ModifiedAt: modified,
		Version:    version,
	}
}

// classifyDriveError maps Drive API errors onto the package taxonomy.
func classifyDriveError(err error, notFound error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrAuthExpired, err)
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: %w", notFound, err)
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError:
			return err
		case gerr.Code == http.StatusForbidden:
			for _, item := range gerr.Errors {
				switch item.Reason {
				case "rateLimitExceeded", "userRateLimitExceeded", "backendError":
					return err
				}
			}
			// Not shared with the service account.
			return fmt.Errorf("%w: %w", ErrFolderNotFound, err)
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: %w", ErrAuthExpired, err)
	}
	return err
}
