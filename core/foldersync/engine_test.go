package foldersync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"realty-inventory/core/history"
	"realty-inventory/core/inventory"
	"realty-inventory/core/remote"
	"realty-inventory/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource serves files from memory, as CSV unless formats says otherwise.
type fakeSource struct {
	mu        sync.Mutex
	files     []remote.FileInfo
	content   map[string]string
	formats   map[string]remote.Format
	listErr   error
	fileErrs  map[string]error
	downloads map[string]int
	block     chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *fakeSource) ListFiles(ctx context.Context, folderID string) ([]remote.FileInfo, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.files, nil
}

func (s *fakeSource) DownloadFile(ctx context.Context, fileID string) (*remote.Blob, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	s.mu.Lock()
	if s.downloads == nil {
		s.downloads = make(map[string]int)
	}
	s.downloads[fileID]++
	s.mu.Unlock()

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.fileErrs[fileID]; err != nil {
		return nil, err
	}
	format, ok := s.formats[fileID]
	if !ok {
		format = remote.FormatCSV
	}
	return &remote.Blob{FileID: fileID, Name: fileID + "." + string(format), Format: format, Data: []byte(s.content[fileID])}, nil
}

func (s *fakeSource) downloadCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloads[id]
}

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) Record(ctx context.Context, run *history.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *recorderMock) Recent(ctx context.Context, folderID string, limit int) ([]history.SyncRun, error) {
	args := m.Called(ctx, folderID, limit)
	return args.Get(0).([]history.SyncRun), args.Error(1)
}

var (
	folder  = inventory.FolderConfig{ProjectName: "Like House", RemoteFolderID: "like-house/"}
	fixedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newEngine(src FileSource, opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return fixedAt })}, opts...)
	return NewEngine(src, Config{Workers: 2, Timeout: time.Minute}, zap.NewNop(), opts...)
}

func csvFile(id, version string) remote.FileInfo {
	return remote.FileInfo{ID: id, Name: id + ".csv", Version: version}
}

func TestEngine_Sync_SingleFile(t *testing.T) {
	src := &fakeSource{
		files: []remote.FileInfo{csvFile("prices", "v1")},
		content: map[string]string{
			"prices": "Проект,Комнаты,Площадь,Цена,Статус\nLike House,2,65 м²,150 000 GEL,Свободна\n",
		},
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	require.NoError(t, err)

	require.Len(t, snap.Records, 1)
	rec := snap.Records[0]
	assert.Equal(t, "Like House", rec.Project)
	assert.Equal(t, 2, *rec.Rooms)
	assert.Equal(t, 65.0, *rec.AreaSqm)
	assert.Equal(t, 150000.0, *rec.Price)
	assert.Equal(t, inventory.StatusAvailable, rec.Status)
	assert.Equal(t, "prices", rec.SourceFileID)
	assert.Equal(t, 1, rec.SourceRowIndex)

	assert.Equal(t, fixedAt, snap.FetchedAt)
	assert.Equal(t, map[string]string{"prices": "v1"}, snap.SourceFileVersions)
	assert.False(t, snap.Partial)
	assert.Empty(t, snap.Errors)
}

func TestEngine_Sync_TitleRowsAndFallbackProject(t *testing.T) {
	src := &fakeSource{
		files: []remote.FileInfo{csvFile("axis", "1")},
		content: map[string]string{
			"axis": "Price list;;\n;;\nRooms;Price;Status\nStudio;$89,900;available\n;;\n1;$120,500;sold\n",
		},
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	require.NoError(t, err)
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "Like House", snap.Records[0].Project)
	assert.Equal(t, 0, *snap.Records[0].Rooms)
	assert.Equal(t, 3, snap.Records[0].SourceRowIndex)
	assert.Equal(t, inventory.StatusSold, snap.Records[1].Status)
	assert.Equal(t, 5, snap.Records[1].SourceRowIndex)
}

func TestEngine_Sync_ReusesUnchangedFiles(t *testing.T) {
	src := &fakeSource{
		files: []remote.FileInfo{csvFile("a", "v1"), csvFile("b", "v2")},
		content: map[string]string{
			"a": "Цена\n100\n",
			"b": "Цена\n200\n300\n",
		},
	}
	engine := newEngine(src)

	first, err := engine.Sync(context.Background(), folder, nil)
	require.NoError(t, err)
	require.Len(t, first.Records, 3)

	src.files = []remote.FileInfo{csvFile("a", "v1"), csvFile("b", "v3")}
	src.content["b"] = "Цена\n250\n"

	second, err := engine.Sync(context.Background(), folder, first)
	require.NoError(t, err)
	assert.Equal(t, 1, src.downloadCount("a"))
	assert.Equal(t, 2, src.downloadCount("b"))
	require.Len(t, second.Records, 2)
	assert.Equal(t, 100.0, *second.Records[0].Price)
	assert.Equal(t, 250.0, *second.Records[1].Price)
	assert.Equal(t, map[string]string{"a": "v1", "b": "v3"}, second.SourceFileVersions)
}

func TestEngine_Sync_PartialFailure(t *testing.T) {
	broken := errors.New("zip: not a valid zip file")
	src := &fakeSource{
		files: []remote.FileInfo{csvFile("a", "v1"), csvFile("b", "v1")},
		content: map[string]string{
			"a": "Цена\n100\n",
			"b": "Цена\n200\n",
		},
	}
	engine := newEngine(src)
	previous, err := engine.Sync(context.Background(), folder, nil)
	require.NoError(t, err)

	src.files = []remote.FileInfo{csvFile("a", "v2"), csvFile("b", "v2")}
	src.content["a"] = "Цена\n110\n"
	src.fileErrs = map[string]error{"b": broken}

	snap, err := engine.Sync(context.Background(), folder, previous)
	assert.Nil(t, snap)

	var failed *SyncFailed
	require.ErrorAs(t, err, &failed)
	require.NotNil(t, failed.Partial)
	assert.ErrorIs(t, err, broken)

	partial := failed.Partial
	assert.True(t, partial.Partial)
	require.Len(t, partial.Errors, 1)
	assert.Equal(t, "b", partial.Errors[0].FileID)
	// Previous rows of the failed file are carried forward, its version is not.
	require.Len(t, partial.Records, 2)
	assert.Equal(t, 110.0, *partial.Records[0].Price)
	assert.Equal(t, 200.0, *partial.Records[1].Price)
	assert.Equal(t, map[string]string{"a": "v2"}, partial.SourceFileVersions)
}

func TestEngine_Sync_AllFilesFail(t *testing.T) {
	src := &fakeSource{
		files:    []remote.FileInfo{csvFile("a", "v1")},
		fileErrs: map[string]error{"a": remote.ErrFileNotFound},
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	assert.Nil(t, snap)

	var failed *SyncFailed
	require.ErrorAs(t, err, &failed)
	assert.Nil(t, failed.Partial)
	assert.ErrorIs(t, err, remote.ErrFileNotFound)
}

func TestEngine_Sync_ListFailure(t *testing.T) {
	src := &fakeSource{listErr: remote.ErrFolderNotFound}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	assert.Nil(t, snap)

	var failed *SyncFailed
	require.ErrorAs(t, err, &failed)
	assert.Nil(t, failed.Partial)
	assert.Equal(t, "like-house/", failed.FolderID)
	assert.ErrorIs(t, err, remote.ErrFolderNotFound)
}

func TestEngine_Sync_EmptyFolder(t *testing.T) {
	src := &fakeSource{
		files: []remote.FileInfo{{ID: "plan", Name: "plan.pdf", MimeType: "application/pdf"}},
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
	assert.Empty(t, snap.SourceFileVersions)
	assert.Zero(t, src.downloadCount("plan"))
}

func TestEngine_Sync_LegacyXLSOnlyFolder(t *testing.T) {
	src := &fakeSource{
		files:   []remote.FileInfo{{ID: "prices", Name: "prices.xls", MimeType: remote.MimeXLS, Version: "v1"}},
		content: map[string]string{"prices": "garbage that is not a BIFF workbook"},
		formats: map[string]remote.Format{"prices": remote.FormatXLS},
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	assert.Nil(t, snap)
	assert.Equal(t, 1, src.downloadCount("prices"))

	var failed *SyncFailed
	require.ErrorAs(t, err, &failed)
	assert.Nil(t, failed.Partial)
	assert.ErrorIs(t, err, sheet.ErrParse)
}

func TestEngine_Sync_Deadline(t *testing.T) {
	src := &fakeSource{
		files: []remote.FileInfo{csvFile("slow", "v1")},
		block: make(chan struct{}),
	}
	engine := NewEngine(src, Config{Workers: 1, Timeout: 20 * time.Millisecond}, zap.NewNop())

	snap, err := engine.Sync(context.Background(), folder, nil)
	assert.Nil(t, snap)

	var failed *SyncFailed
	require.ErrorAs(t, err, &failed)
	assert.Nil(t, failed.Partial)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_Sync_BoundedWorkers(t *testing.T) {
	src := &fakeSource{content: map[string]string{}}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		src.files = append(src.files, csvFile(id, "1"))
		src.content[id] = "Цена\n1\n"
	}

	snap, err := newEngine(src).Sync(context.Background(), folder, nil)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 6)
	assert.LessOrEqual(t, src.maxInFlight.Load(), int32(2))
	// Aggregation follows listing order.
	for i, id := range []string{"a", "b", "c", "d", "e", "f"} {
		assert.Equal(t, id, snap.Records[i].SourceFileID)
	}
}

func TestEngine_Sync_RecordsHistory(t *testing.T) {
	rec := new(recorderMock)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(run *history.SyncRun) bool {
		return run.Status == history.StatusPartial &&
			run.FilesListed == 2 && run.FilesParsed == 1 && run.FilesFailed == 1 &&
			run.Records == 1 && run.FolderID == "like-house/"
	})).Return(nil).Once()

	src := &fakeSource{
		files:    []remote.FileInfo{csvFile("a", "1"), csvFile("b", "1")},
		content:  map[string]string{"a": "Цена\n1\n"},
		fileErrs: map[string]error{"b": errors.New("boom")},
	}

	_, err := newEngine(src, WithRecorder(rec)).Sync(context.Background(), folder, nil)
	require.Error(t, err)
	rec.AssertExpectations(t)
}

func TestEngine_Sync_RecorderErrorIgnored(t *testing.T) {
	rec := new(recorderMock)
	rec.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))

	src := &fakeSource{files: []remote.FileInfo{csvFile("a", "1")}, content: map[string]string{"a": "Цена\n1\n"}}

	snap, err := newEngine(src, WithRecorder(rec)).Sync(context.Background(), folder, nil)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
}
