package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Warm syncs every folder concurrently. Failures are logged, not returned.
func (c *InventoryCache) Warm(ctx context.Context) {
	c.refreshAll(ctx, c.cfg.TTL)
}

// Run keeps snapshots fresh in the background until ctx is done. Folders are
// refreshed one interval before they would expire so readers rarely wait on a sync.
func (c *InventoryCache) Run(ctx context.Context) {
	if c.cfg.RefreshInterval <= 0 {
		return
	}

	maxAge := c.cfg.TTL - c.cfg.RefreshInterval
	if maxAge <= 0 {
		maxAge = c.cfg.TTL
	}

	c.logger.Info("Background refresher started",
		zap.Duration("interval", c.cfg.RefreshInterval),
		zap.Int("folders", len(c.folders)))

	c.refreshAll(ctx, maxAge)

	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Background refresher stopped")
			return
		case <-ticker.C:
			c.refreshAll(ctx, maxAge)
		}
	}
}

func (c *InventoryCache) refreshAll(ctx context.Context, maxAge time.Duration) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, f := range c.folders {
		g.Go(func() error {
			if _, err := c.GetSnapshot(gctx, f.RemoteFolderID, maxAge); err != nil {
				c.logger.Warn("Background refresh failed",
					zap.String("folder_id", f.RemoteFolderID),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
