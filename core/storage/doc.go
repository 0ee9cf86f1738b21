// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified, read-only interface over the
// bucket that holds developer inventory spreadsheets. This abstraction supports both
// AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the inventory bucket.
//   - ListObjects: Lists the spreadsheets under a folder prefix.
//   - StatObject: Reads the content type and ETag of a spreadsheet.
//   - GetObject: Retrieves spreadsheet content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "inventory")
package storage
