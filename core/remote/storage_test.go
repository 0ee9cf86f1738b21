package remote

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"realty-inventory/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objectChan(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func TestStorageProvider_ListFiles(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("ListsFolderObjects", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(true, nil)
		client.On("ListObjects", ctx, "inventory", minio.ListObjectsOptions{Prefix: "like-house/"}).Return(objectChan(
			minio.ObjectInfo{Key: "like-house/archive/"},
			minio.ObjectInfo{Key: "like-house/Prices.xlsx", ETag: `"abc123"`, LastModified: modified},
			minio.ObjectInfo{Key: "like-house/units.csv", ETag: "def", ContentType: "text/csv"},
		))

		p := NewStorageProvider(client, "inventory")
		files, err := p.ListFiles(ctx, "like-house")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, FileInfo{ID: "like-house/Prices.xlsx", Name: "Prices.xlsx", ModifiedAt: modified, Version: "abc123"}, files[0])
		assert.Equal(t, "units.csv", files[1].Name)
		assert.Equal(t, "text/csv", files[1].MimeType)
		client.AssertExpectations(t)
	})

	t.Run("MissingPrefix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(true, nil)
		client.On("ListObjects", ctx, "inventory", minio.ListObjectsOptions{Prefix: "typo-folder/"}).Return(objectChan())

		p := NewStorageProvider(client, "inventory")
		files, err := p.ListFiles(ctx, "typo-folder/")
		assert.Nil(t, files)
		assert.ErrorIs(t, err, ErrFolderNotFound)
		assert.True(t, IsPermanent(err))
	})

	t.Run("EmptyFolderWithMarker", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(true, nil)
		client.On("ListObjects", ctx, "inventory", minio.ListObjectsOptions{Prefix: "axis/"}).Return(objectChan(
			minio.ObjectInfo{Key: "axis/"},
		))

		p := NewStorageProvider(client, "inventory")
		files, err := p.ListFiles(ctx, "axis/")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(false, nil)

		p := NewStorageProvider(client, "inventory")
		_, err := p.ListFiles(ctx, "like-house/")
		assert.ErrorIs(t, err, ErrFolderNotFound)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(true, nil)
		client.On("ListObjects", ctx, "inventory", mock.Anything).Return(objectChan(
			minio.ObjectInfo{Err: minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}},
		))

		p := NewStorageProvider(client, "inventory")
		_, err := p.ListFiles(ctx, "private")
		assert.ErrorIs(t, err, ErrFolderNotFound)
		assert.True(t, IsPermanent(err))
	})

	t.Run("TransientListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "inventory").Return(false, errors.New("dial tcp: connection refused"))

		p := NewStorageProvider(client, "inventory")
		_, err := p.ListFiles(ctx, "like-house")
		require.Error(t, err)
		assert.False(t, IsPermanent(err))
	})
}

func TestStorageProvider_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "inventory", "like-house/units.csv", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{ContentType: "text/csv"}, nil)
		client.On("GetObject", ctx, "inventory", "like-house/units.csv", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("a;b\n1;2\n")), nil)

		p := NewStorageProvider(client, "inventory")
		blob, err := p.Download(ctx, "like-house/units.csv")
		require.NoError(t, err)
		assert.Equal(t, "units.csv", blob.Name)
		assert.Equal(t, "text/csv", blob.ContentType)
		assert.Equal(t, "a;b\n1;2\n", string(blob.Data))
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "inventory", "gone.xlsx", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		p := NewStorageProvider(client, "inventory")
		_, err := p.Download(ctx, "gone.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("ExpiredCredentials", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "inventory", "a.xlsx", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "ExpiredToken", StatusCode: 400})

		p := NewStorageProvider(client, "inventory")
		_, err := p.Download(ctx, "a.xlsx")
		assert.ErrorIs(t, err, ErrAuthExpired)
	})
}

func TestFolderPrefix(t *testing.T) {
	assert.Equal(t, "like-house/", folderPrefix("like-house"))
	assert.Equal(t, "like-house/", folderPrefix("/like-house/"))
	assert.Equal(t, "", folderPrefix(""))
}
