package folders

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"realty-inventory/core/cache"
	"realty-inventory/core/history"
	"realty-inventory/core/remote"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

type failingLister struct{}

func (failingLister) ListFiles(ctx context.Context, folderID string) ([]remote.FileInfo, error) {
	return nil, remote.ErrAuthExpired
}

func newApp(t *testing.T, f *Feature) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, f.Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return resp.StatusCode, body
}

func TestHandleOverview(t *testing.T) {
	rec := newRecorder(t)
	c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
	f := NewFeature(c, emptyLister{}, rec, rec, zap.NewNop())
	assert.Equal(t, "folders", f.Name())
	assert.True(t, f.IsEnabled())
	app := newApp(t, f)

	status, body := get(t, app, "/folders")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["folders"], 2)
	assert.Equal(t, "ok", body["history"].(map[string]any)["status"])

	status, _ = get(t, app, "/folders?runs=0")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandleAccessCheck(t *testing.T) {
	c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
	app := newApp(t, NewFeature(c, failingLister{}, history.Nop{}, nil, zap.NewNop()))

	status, body := get(t, app, "/folders/access")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["failed"])
}

func TestHandleHistoryCheck(t *testing.T) {
	t.Run("MissingColumns", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"Field", "Type"}).
			AddRow("id", "varchar(36)").
			AddRow("folder_id", "varchar(255)")
		mock.ExpectQuery("SHOW COLUMNS FROM `inventory_sync_runs`").WillReturnRows(rows)

		rec := history.NewGormRecorder(db)
		c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
		app := newApp(t, NewFeature(c, emptyLister{}, rec, rec, zap.NewNop()))

		status, body := get(t, app, "/folders/history")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "missing_columns", body["status"])
		assert.Contains(t, body["missing_columns"], "records")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS").WillReturnError(errors.New("connection refused"))

		rec := history.NewGormRecorder(db)
		c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
		app := newApp(t, NewFeature(c, emptyLister{}, rec, rec, zap.NewNop()))

		status, body := get(t, app, "/folders/history")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "error", body["status"])
	})
}
