package foldersync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty-inventory/core/history"
	"realty-inventory/core/inventory"
	"realty-inventory/core/normalize"
	"realty-inventory/core/observability"
	"realty-inventory/core/remote"
	"realty-inventory/core/schema"
	"realty-inventory/core/sheet"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileSource lists and downloads remote files.
type FileSource interface {
	ListFiles(ctx context.Context, folderID string) ([]remote.FileInfo, error)
	DownloadFile(ctx context.Context, fileID string) (*remote.Blob, error)
}

// Engine synchronizes folders.
type Engine struct {
	source     FileSource
	detector   *schema.Detector
	normalizer *normalize.Normalizer
	recorder   history.Recorder
	cfg        Config
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder stores every sync attempt in r.
func WithRecorder(r history.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a sync engine.
func NewEngine(source FileSource, cfg Config, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		source:     source,
		detector:   schema.NewDetector(logger),
		normalizer: normalize.NewNormalizer(logger),
		recorder:   history.Nop{},
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type fileResult struct {
	records []inventory.Record
	reused  bool
	err     error
}

// Sync builds a new snapshot of folder. previous may be nil.
// On failure the error is a *SyncFailed; its Partial snapshot is set when at least
// one file could be read.
func (e *Engine) Sync(ctx context.Context, folder inventory.FolderConfig, previous *inventory.Snapshot) (*inventory.Snapshot, error) {
	started := e.now()
	log := e.logger.With(zap.String("folder_id", folder.RemoteFolderID), zap.String("project", folder.ProjectName))

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	run := &history.SyncRun{
		FolderID:  folder.RemoteFolderID,
		Project:   folder.ProjectName,
		StartedAt: started,
	}

	listed, err := e.source.ListFiles(ctx, folder.RemoteFolderID)
	if err != nil {
		return nil, e.finish(ctx, log, run, &SyncFailed{FolderID: folder.RemoteFolderID, Cause: err})
	}

	var files []remote.FileInfo
	for _, f := range listed {
		if f.IsSpreadsheet() {
			files = append(files, f)
			continue
		}
		log.Debug("Skipping non-spreadsheet file", zap.String("file_id", f.ID), zap.String("name", f.Name))
	}
	run.FilesListed = len(files)

	var prevVersions map[string]string
	var prevRecords map[string][]inventory.Record
	if previous != nil {
		prevVersions = previous.SourceFileVersions
		prevRecords = previous.RecordsByFile()
	}

	results := make([]fileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(e.cfg.workers())
	for i, f := range files {
		if v, ok := prevVersions[f.ID]; ok && f.Version != "" && v == f.Version {
			results[i] = fileResult{records: prevRecords[f.ID], reused: true}
			continue
		}
		g.Go(func() error {
			results[i] = e.syncFile(ctx, log, folder, f)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		cause := fmt.Errorf("sync abandoned: %w", err)
		return nil, e.finish(ctx, log, run, &SyncFailed{FolderID: folder.RemoteFolderID, Cause: cause})
	}

	snap := &inventory.Snapshot{
		FolderID:           folder.RemoteFolderID,
		Project:            folder.ProjectName,
		Records:            []inventory.Record{},
		FetchedAt:          e.now(),
		SourceFileVersions: make(map[string]string, len(files)),
	}

	var errs []error
	for i, f := range files {
		r := results[i]
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, r.err))
			snap.Errors = append(snap.Errors, inventory.FileError{FileID: f.ID, FileName: f.Name, Error: r.err.Error()})
			// Rows of the last good version stay visible; the version is not carried so
			// the file is retried next time.
			snap.Records = append(snap.Records, prevRecords[f.ID]...)
			run.FilesFailed++
			continue
		}
		if r.reused {
			run.FilesReused++
		} else {
			run.FilesParsed++
		}
		snap.Records = append(snap.Records, r.records...)
		snap.SourceFileVersions[f.ID] = f.Version
	}
	run.Records = len(snap.Records)

	switch {
	case len(errs) == 0:
		return snap, e.finish(ctx, log, run, nil)
	case len(errs) == len(files):
		cause := fmt.Errorf("no file could be read: %w", errors.Join(errs...))
		return nil, e.finish(ctx, log, run, &SyncFailed{FolderID: folder.RemoteFolderID, Cause: cause})
	default:
		snap.Partial = true
		return nil, e.finish(ctx, log, run, &SyncFailed{FolderID: folder.RemoteFolderID, Partial: snap, Cause: errors.Join(errs...)})
	}
}

// syncFile downloads and normalizes a single file.
func (e *Engine) syncFile(ctx context.Context, log *zap.Logger, folder inventory.FolderConfig, f remote.FileInfo) fileResult {
	log = log.With(zap.String("file_id", f.ID), zap.String("file", f.Name))

	blob, err := e.source.DownloadFile(ctx, f.ID)
	if err != nil {
		log.Warn("File download failed", zap.Error(err))
		return fileResult{err: err}
	}

	grids, err := sheet.Parse(blob)
	if err != nil {
		log.Warn("File parse failed", zap.Error(err))
		return fileResult{err: err}
	}

	records := []inventory.Record{}
	for _, grid := range grids {
		raw := sheet.Split(grid, e.detector.LocateHeader(grid.Rows), f.ID)
		mapping := e.detector.Detect(raw.HeaderRow)
		if mapping.Count() == 0 {
			log.Debug("No recognizable header, sheet skipped", zap.String("sheet", grid.Name))
			continue
		}
		skipped := 0
		for j, row := range raw.DataRows {
			rec, ok := e.normalizer.Normalize(row, mapping, folder.ProjectName, f.ID, raw.RowIndex(j))
			if !ok {
				skipped++
				continue
			}
			records = append(records, rec)
		}
		log.Debug("Sheet normalized",
			zap.String("sheet", grid.Name),
			zap.Int("header_row", raw.HeaderOffset),
			zap.Any("columns", mapping.Columns()),
			zap.Int("records", len(raw.DataRows)-skipped),
			zap.Int("skipped", skipped))
	}
	return fileResult{records: records}
}

// finish logs, records and counts the outcome of a sync and returns failure unchanged.
func (e *Engine) finish(ctx context.Context, log *zap.Logger, run *history.SyncRun, failure *SyncFailed) error {
	run.FinishedAt = e.now()
	elapsed := run.FinishedAt.Sub(run.StartedAt)

	fields := []zap.Field{
		zap.Int("files", run.FilesListed),
		zap.Int("reused", run.FilesReused),
		zap.Int("parsed", run.FilesParsed),
		zap.Int("failed", run.FilesFailed),
		zap.Int("records", run.Records),
		zap.Duration("duration", elapsed),
	}

	switch {
	case failure == nil:
		run.Status = history.StatusOK
		log.Info("Folder synced", fields...)
	case failure.Partial != nil:
		run.Status = history.StatusPartial
		run.Error = failure.Cause.Error()
		log.Warn("Folder synced partially", append(fields, zap.Error(failure.Cause))...)
	default:
		run.Status = history.StatusFailed
		run.Error = failure.Cause.Error()
		log.Error("Folder sync failed", append(fields, zap.Error(failure.Cause))...)
	}

	observability.SyncTotal.WithLabelValues(run.FolderID, run.Status).Inc()
	observability.SyncDuration.WithLabelValues(run.FolderID).Observe(elapsed.Seconds())

	// The sync context may already be past its deadline.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.recorder.Record(recordCtx, run); err != nil {
		log.Warn("Failed to record sync run", zap.Error(err))
	}

	if failure == nil {
		return nil
	}
	return failure
}
