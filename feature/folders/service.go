package folders

import (
	"context"

	"realty-inventory/core/cache"
	"realty-inventory/core/history"
	"realty-inventory/feature/folders/checks"

	"go.uber.org/zap"
)

// DefaultRuns is how many recent sync runs are listed per folder.
const DefaultRuns = 5

// Service reports on configured folders.
type Service struct {
	cache    *cache.InventoryCache
	lister   checks.Lister
	recorder history.Recorder
	schema   checks.SchemaChecker
	logger   *zap.Logger
}

// NewService creates a new folders service. schema may be nil when history is not stored.
func NewService(c *cache.InventoryCache, lister checks.Lister, recorder history.Recorder, schema checks.SchemaChecker, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = history.Nop{}
	}
	return &Service{
		cache:    c,
		lister:   lister,
		recorder: recorder,
		schema:   schema,
		logger:   logger,
	}
}

// FolderOverview is a configured folder with its cache state and latest runs.
type FolderOverview struct {
	cache.FolderState
	Runs      []history.SyncRun `json:"runs"`
	RunsError string            `json:"runs_error,omitempty"`
}

// Overview returns every configured folder with up to runs recent sync runs.
// It does not trigger syncs.
func (s *Service) Overview(ctx context.Context, runs int) []FolderOverview {
	if runs <= 0 {
		runs = DefaultRuns
	}

	states := s.cache.States()
	overview := make([]FolderOverview, 0, len(states))
	for _, st := range states {
		o := FolderOverview{FolderState: st, Runs: []history.SyncRun{}}
		recent, err := s.recorder.Recent(ctx, st.Folder.RemoteFolderID, runs)
		if err != nil {
			s.logger.Warn("Failed to load sync runs",
				zap.String("folder_id", st.Folder.RemoteFolderID),
				zap.Error(err))
			o.RunsError = err.Error()
		} else if recent != nil {
			o.Runs = recent
		}
		overview = append(overview, o)
	}
	return overview
}

// CheckAccess lists every configured folder on the remote backend.
func (s *Service) CheckAccess(ctx context.Context) []checks.AccessReport {
	return checks.CheckAccess(ctx, s.lister, s.cache.Folders())
}

// CheckHistory verifies the history table schema.
func (s *Service) CheckHistory(ctx context.Context) checks.HistoryReport {
	return checks.CheckHistory(ctx, s.schema)
}
