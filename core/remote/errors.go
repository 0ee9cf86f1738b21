package remote

import "errors"

var (
	// ErrRemoteUnavailable is returned when transient failures exhausted the retry budget.
	ErrRemoteUnavailable = errors.New("remote storage unavailable")
	// ErrFolderNotFound is returned when a folder does not exist or is not shared with us.
	ErrFolderNotFound = errors.New("remote folder not found or not shared")
	// ErrFileNotFound is returned when a listed file disappeared before download.
	ErrFileNotFound = errors.New("remote file not found")
	// ErrAuthExpired is returned when the provider rejects the session credentials.
	ErrAuthExpired = errors.New("remote session rejected")
	// ErrUnsupportedFormat is returned when downloaded content is not a spreadsheet we can read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// IsPermanent reports whether err must not be retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrFolderNotFound) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrAuthExpired) ||
		errors.Is(err, ErrUnsupportedFormat)
}
