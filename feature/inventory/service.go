package inventory

import (
	"context"
	"time"

	"realty-inventory/core/cache"
	"realty-inventory/core/inventory"
	"realty-inventory/core/search"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service serves inventory reads on top of the cache.
type Service struct {
	cache  *cache.InventoryCache
	engine *search.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new inventory service.
func NewService(c *cache.InventoryCache, logger *zap.Logger) *Service {
	return &Service{
		cache:  c,
		engine: search.NewEngine(c, logger),
		logger: logger,
		now:    time.Now,
	}
}

// FolderSummary is the per folder line of the inventory summary.
type FolderSummary struct {
	FolderID  string                   `json:"folder_id"`
	Project   string                   `json:"project"`
	Records   int                      `json:"records"`
	ByStatus  map[inventory.Status]int `json:"by_status,omitempty"`
	FetchedAt *time.Time               `json:"fetched_at,omitempty"`
	Age       string                   `json:"age,omitempty"`
	Stale     bool                     `json:"stale"`
	Partial   bool                     `json:"partial"`
	Error     string                   `json:"error,omitempty"`
}

// Summary is the inventory overview across folders.
type Summary struct {
	Folders []FolderSummary `json:"folders"`
	Records int             `json:"records"`
}

// Search runs q against folderIDs, or every folder when none is given.
func (s *Service) Search(ctx context.Context, q search.Query, folderIDs []string) (*search.Result, error) {
	return s.engine.Search(ctx, q, folderIDs)
}

// Snapshot returns the current snapshot of a folder, syncing it when expired.
func (s *Service) Snapshot(ctx context.Context, folderID string) (*inventory.Snapshot, error) {
	return s.cache.GetSnapshot(ctx, folderID, 0)
}

// Refresh forces a sync of a folder.
func (s *Service) Refresh(ctx context.Context, folderID string) (*inventory.Snapshot, error) {
	return s.cache.Refresh(ctx, folderID)
}

// Summary loads every folder and counts its records by status.
// A folder that cannot be served is reported with its error.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	folders := s.cache.Folders()
	lines := make([]FolderSummary, len(folders))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range folders {
		g.Go(func() error {
			line := FolderSummary{FolderID: f.RemoteFolderID, Project: f.ProjectName}
			snap, err := s.cache.GetSnapshot(gctx, f.RemoteFolderID, 0)
			if err != nil {
				line.Error = err.Error()
				lines[i] = line
				return nil
			}
			fetched := snap.FetchedAt
			line.Records = len(snap.Records)
			line.ByStatus = countByStatus(snap.Records)
			line.FetchedAt = &fetched
			line.Age = snap.Age(s.now()).Round(time.Second).String()
			line.Stale = snap.Stale
			line.Partial = snap.Partial
			lines[i] = line
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{Folders: lines}
	for _, l := range lines {
		summary.Records += l.Records
	}
	return summary, nil
}

func countByStatus(records []inventory.Record) map[inventory.Status]int {
	counts := make(map[inventory.Status]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}
