// Package remote implements the remote file client used to read developer inventory
// spreadsheets from cloud folders.
//
// # Providers
//
// A Provider knows how to list a folder and download a file on one storage backend:
//
//   - StorageProvider: S3/MinIO bucket, folders are object key prefixes.
//   - DriveProvider: Google Drive, folders are Drive folder ids.
//
// Providers translate backend failures into the package error taxonomy
// (ErrFolderNotFound, ErrFileNotFound, ErrAuthExpired). Anything they leave unclassified
// is treated as transient.
//
// # Client
//
// Client wraps a Provider with a per-call timeout and exponential backoff. Transient
// failures are retried up to the policy budget and then surface as ErrRemoteUnavailable;
// permanent failures return immediately. Downloads whose content is not a recognised
// spreadsheet fail with ErrUnsupportedFormat.
//
// # Usage
//
//	client := remote.NewClient(remote.NewStorageProvider(store, "inventory"), cfg.Remote, logger)
//	files, err := client.ListFiles(ctx, "like-house/")
//	blob, err := client.DownloadFile(ctx, files[0].ID)
package remote
