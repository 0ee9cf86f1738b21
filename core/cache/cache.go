package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"realty-inventory/core/foldersync"
	"realty-inventory/core/inventory"
	"realty-inventory/core/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownFolder is returned for folder ids that are not configured.
var ErrUnknownFolder = errors.New("unknown folder")

// Syncer produces folder snapshots.
type Syncer interface {
	Sync(ctx context.Context, folder inventory.FolderConfig, previous *inventory.Snapshot) (*inventory.Snapshot, error)
}

// entry is replaced wholesale, never mutated.
type entry struct {
	snapshot *inventory.Snapshot
	lastErr  error
	failedAt time.Time
}

// InventoryCache owns the snapshots of all configured folders.
type InventoryCache struct {
	syncer  Syncer
	folders []inventory.FolderConfig
	byID    map[string]inventory.FolderConfig
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
}

// Option configures an InventoryCache.
type Option func(*InventoryCache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *InventoryCache) { c.now = now }
}

// New creates a cache for the given folders. Zero config values take the defaults.
func New(syncer Syncer, folders []inventory.FolderConfig, cfg Config, logger *zap.Logger, opts ...Option) *InventoryCache {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = def.SyncTimeout
	}
	if cfg.FailureBackoff < 0 {
		cfg.FailureBackoff = 0
	}

	c := &InventoryCache{
		syncer:  syncer,
		folders: append([]inventory.FolderConfig(nil), folders...),
		byID:    make(map[string]inventory.FolderConfig, len(folders)),
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, f := range folders {
		c.byID[f.RemoteFolderID] = f
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Folders returns the configured folders in configuration order.
func (c *InventoryCache) Folders() []inventory.FolderConfig {
	return append([]inventory.FolderConfig(nil), c.folders...)
}

// Folder returns the configuration of a folder.
func (c *InventoryCache) Folder(folderID string) (inventory.FolderConfig, bool) {
	f, ok := c.byID[folderID]
	return f, ok
}

// TTL returns the configured snapshot time-to-live.
func (c *InventoryCache) TTL() time.Duration {
	return c.cfg.TTL
}

// GetSnapshot returns a snapshot of the folder no older than maxAge (the TTL when
// maxAge is zero). A missing snapshot is synced before returning and a sync failure
// is returned as is. An expired snapshot is resynced; if that fails the old
// snapshot is returned with Stale set and no error.
func (c *InventoryCache) GetSnapshot(ctx context.Context, folderID string, maxAge time.Duration) (*inventory.Snapshot, error) {
	folder, ok := c.byID[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, folderID)
	}
	if maxAge <= 0 {
		maxAge = c.cfg.TTL
	}

	// Fast path: fresh snapshot
	e := c.load(folderID)
	now := c.now()
	if e.snapshot != nil && e.snapshot.Age(now) <= maxAge {
		observability.CacheRequests.WithLabelValues(folderID, "hit").Inc()
		return e.snapshot, nil
	}

	// A recent failure is not retried on the request path while there is
	// something to serve. A folder without a snapshot always syncs.
	if e.snapshot != nil && e.lastErr != nil && now.Sub(e.failedAt) < c.cfg.FailureBackoff {
		observability.CacheRequests.WithLabelValues(folderID, "stale").Inc()
		return e.snapshot.MarkStale(e.lastErr), nil
	}

	return c.sync(ctx, folder, maxAge, false)
}

// Refresh resyncs a folder regardless of its age or failure backoff.
func (c *InventoryCache) Refresh(ctx context.Context, folderID string) (*inventory.Snapshot, error) {
	folder, ok := c.byID[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, folderID)
	}
	return c.sync(ctx, folder, 0, true)
}

// sync joins or starts the folder's shared flight. The flight runs on its own
// context so a caller giving up does not cancel it for the others.
func (c *InventoryCache) sync(ctx context.Context, folder inventory.FolderConfig, maxAge time.Duration, force bool) (*inventory.Snapshot, error) {
	ch := c.sf.DoChan(folder.RemoteFolderID, func() (any, error) {
		return c.runSync(folder, maxAge, force)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*inventory.Snapshot), nil
	}
}

func (c *InventoryCache) runSync(folder inventory.FolderConfig, maxAge time.Duration, force bool) (*inventory.Snapshot, error) {
	id := folder.RemoteFolderID

	// Double-check: a flight that just finished may have stored a fresh snapshot.
	prev := c.load(id)
	if !force && prev.snapshot != nil && prev.snapshot.Age(c.now()) <= maxAge {
		observability.CacheRequests.WithLabelValues(id, "hit").Inc()
		return prev.snapshot, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SyncTimeout)
	defer cancel()

	snap, err := c.syncer.Sync(ctx, folder, prev.snapshot)
	if err == nil {
		c.store(id, entry{snapshot: snap})
		observability.CacheRequests.WithLabelValues(id, resultLabel(prev.snapshot)).Inc()
		return snap, nil
	}

	var failed *foldersync.SyncFailed
	if errors.As(err, &failed) && failed.Partial != nil {
		c.logger.Warn("Serving partial snapshot",
			zap.String("folder_id", id),
			zap.Int("failed_files", len(failed.Partial.Errors)))
		c.store(id, entry{snapshot: failed.Partial})
		observability.CacheRequests.WithLabelValues(id, resultLabel(prev.snapshot)).Inc()
		return failed.Partial, nil
	}

	c.store(id, entry{snapshot: prev.snapshot, lastErr: err, failedAt: c.now()})
	if prev.snapshot != nil {
		c.logger.Warn("Refresh failed, serving stale snapshot",
			zap.String("folder_id", id),
			zap.Time("fetched_at", prev.snapshot.FetchedAt),
			zap.Error(err))
		observability.CacheRequests.WithLabelValues(id, "stale").Inc()
		return prev.snapshot.MarkStale(err), nil
	}

	observability.CacheRequests.WithLabelValues(id, "failed").Inc()
	return nil, err
}

func resultLabel(previous *inventory.Snapshot) string {
	if previous == nil {
		return "miss"
	}
	return "refreshed"
}

func (c *InventoryCache) load(folderID string) entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[folderID]
}

func (c *InventoryCache) store(folderID string, e entry) {
	c.mu.Lock()
	c.entries[folderID] = e
	c.mu.Unlock()

	if e.snapshot != nil {
		observability.SnapshotRecords.WithLabelValues(folderID).Set(float64(len(e.snapshot.Records)))
	}
}
