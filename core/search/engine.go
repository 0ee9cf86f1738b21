package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"realty-inventory/core/cache"
	"realty-inventory/core/inventory"
	"realty-inventory/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnavailable is returned when none of the requested folders could be served.
var ErrUnavailable = errors.New("inventory unavailable")

// SnapshotSource provides folder snapshots.
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, folderID string, maxAge time.Duration) (*inventory.Snapshot, error)
	Folders() []inventory.FolderConfig
}

// FolderFailure reports a folder left out of a result.
type FolderFailure struct {
	FolderID string `json:"folder_id"`
	Project  string `json:"project"`
	Error    string `json:"error"`
}

// Result is the outcome of a search.
type Result struct {
	Records []inventory.Record `json:"records"`
	// Total is the number of matches before Limit was applied.
	Total int `json:"total"`
	// StaleFolders were served from a snapshot whose refresh failed.
	StaleFolders []string `json:"stale_folders"`
	// PartialFolders were served from a snapshot missing some files.
	PartialFolders []string        `json:"partial_folders"`
	Failures       []FolderFailure `json:"failures"`
}

// Engine runs queries against the inventory cache.
type Engine struct {
	source SnapshotSource
	logger *zap.Logger
}

// NewEngine creates a search engine.
func NewEngine(source SnapshotSource, logger *zap.Logger) *Engine {
	return &Engine{source: source, logger: logger}
}

type folderResult struct {
	folder inventory.FolderConfig
	snap   *inventory.Snapshot
	err    error
}

// Search returns the records of folderIDs (every configured folder when empty)
// matching q. No match is an empty result, not an error.
func (e *Engine) Search(ctx context.Context, q Query, folderIDs []string) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	folders, err := e.resolve(folderIDs)
	if err != nil {
		return nil, err
	}

	results := make([]folderResult, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range folders {
		g.Go(func() error {
			snap, err := e.source.GetSnapshot(gctx, f.RemoteFolderID, 0)
			results[i] = folderResult{folder: f, snap: snap, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{
		Records:        []inventory.Record{},
		StaleFolders:   []string{},
		PartialFolders: []string{},
		Failures:       []FolderFailure{},
	}
	var errs []error
	for _, r := range results {
		if r.err != nil {
			e.logger.Warn("Folder unavailable for search",
				zap.String("folder_id", r.folder.RemoteFolderID),
				zap.Error(r.err))
			errs = append(errs, r.err)
			res.Failures = append(res.Failures, FolderFailure{
				FolderID: r.folder.RemoteFolderID,
				Project:  r.folder.ProjectName,
				Error:    r.err.Error(),
			})
			continue
		}
		if r.snap.Stale {
			res.StaleFolders = append(res.StaleFolders, r.folder.RemoteFolderID)
		}
		if r.snap.Partial {
			res.PartialFolders = append(res.PartialFolders, r.folder.RemoteFolderID)
		}
		for _, rec := range r.snap.Records {
			if q.Match(rec) {
				res.Records = append(res.Records, rec)
			}
		}
	}

	if len(folders) > 0 && len(errs) == len(folders) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
	}

	Sort(res.Records)
	res.Total = len(res.Records)
	if q.Limit > 0 && len(res.Records) > q.Limit {
		res.Records = res.Records[:q.Limit]
	}
	return res, nil
}

// resolve maps requested ids to configured folders, keeping request order and
// dropping duplicates.
func (e *Engine) resolve(folderIDs []string) ([]inventory.FolderConfig, error) {
	all := e.source.Folders()
	if len(folderIDs) == 0 {
		return all, nil
	}

	byID := make(map[string]inventory.FolderConfig, len(all))
	for _, f := range all {
		byID[f.RemoteFolderID] = f
	}

	seen := make(map[string]struct{}, len(folderIDs))
	folders := make([]inventory.FolderConfig, 0, len(folderIDs))
	for _, id := range folderIDs {
		f, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", cache.ErrUnknownFolder, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		folders = append(folders, f)
	}
	return folders, nil
}

// Sort orders records by ascending price, unpriced last, then by project name.
func Sort(records []inventory.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.Price != nil && b.Price != nil && *a.Price != *b.Price:
			return *a.Price < *b.Price
		case a.Price != nil && b.Price == nil:
			return true
		case a.Price == nil && b.Price != nil:
			return false
		}
		return strings.Compare(utils.Fold(a.Project), utils.Fold(b.Project)) < 0
	})
}
