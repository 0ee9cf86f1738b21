// Package cache holds the latest inventory snapshot of every configured folder.
//
// Reads within the TTL never touch the remote source. Expired or missing folders are
// resynced through a per-folder singleflight, so concurrent readers share one sync.
// When a refresh fails the previous snapshot keeps being served, flagged as stale,
// and no new attempt is made until the failure backoff has passed. A folder that has
// never synced successfully is synced on every read.
//
// # Usage
//
//	c := cache.New(engine, folders, cfg, logger)
//	go c.Run(ctx) // optional background refresh
//	snap, err := c.GetSnapshot(ctx, "like-house/", 0)
package cache
