package folders

import (
	"context"
	"testing"
	"time"

	"realty-inventory/core/cache"
	"realty-inventory/core/database"
	"realty-inventory/core/history"
	"realty-inventory/core/inventory"
	"realty-inventory/core/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSyncer struct{}

func (stubSyncer) Sync(ctx context.Context, folder inventory.FolderConfig, previous *inventory.Snapshot) (*inventory.Snapshot, error) {
	return &inventory.Snapshot{
		FolderID:           folder.RemoteFolderID,
		Project:            folder.ProjectName,
		Records:            []inventory.Record{{Project: folder.ProjectName, Status: inventory.StatusAvailable}},
		FetchedAt:          time.Now(),
		SourceFileVersions: map[string]string{"prices.xlsx": "v1"},
	}, nil
}

type emptyLister struct{}

func (emptyLister) ListFiles(ctx context.Context, folderID string) ([]remote.FileInfo, error) {
	return nil, nil
}

var testFolders = []inventory.FolderConfig{
	{ProjectName: "Like House", RemoteFolderID: "like-house/"},
	{ProjectName: "Axis", RemoteFolderID: "axis/"},
}

func newRecorder(t *testing.T) *history.GormRecorder {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	rec := history.NewGormRecorder(db)
	require.NoError(t, rec.Migrate(context.Background()))
	return rec
}

func TestService_Overview(t *testing.T) {
	ctx := context.Background()
	rec := newRecorder(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Record(ctx, &history.SyncRun{
			FolderID:   "like-house/",
			Project:    "Like House",
			StartedAt:  started.Add(time.Duration(i) * time.Minute),
			FinishedAt: started.Add(time.Duration(i)*time.Minute + time.Second),
			Records:    i,
			Status:     history.StatusOK,
		}))
	}

	c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
	_, err := c.GetSnapshot(ctx, "like-house/", 0)
	require.NoError(t, err)

	svc := NewService(c, emptyLister{}, rec, rec, zap.NewNop())
	overview := svc.Overview(ctx, 2)
	require.Len(t, overview, 2)

	like := overview[0]
	assert.True(t, like.Cached)
	assert.Equal(t, 1, like.Records)
	require.Len(t, like.Runs, 2)
	assert.Equal(t, 2, like.Runs[0].Records, "newest run first")

	axis := overview[1]
	assert.False(t, axis.Cached)
	assert.Empty(t, axis.Runs)
	assert.Equal(t, 1, c.States()[0].Files)

	assert.Equal(t, "ok", svc.CheckHistory(ctx).Status)
}

func TestService_WithoutHistory(t *testing.T) {
	c := cache.New(stubSyncer{}, testFolders, cache.DefaultConfig(), zap.NewNop())
	svc := NewService(c, emptyLister{}, nil, nil, zap.NewNop())

	overview := svc.Overview(context.Background(), 0)
	require.Len(t, overview, 2)
	assert.Empty(t, overview[0].Runs)
	assert.Equal(t, "disabled", svc.CheckHistory(context.Background()).Status)

	reports := svc.CheckAccess(context.Background())
	require.Len(t, reports, 2)
	assert.Equal(t, "empty", reports[0].Status)
}
