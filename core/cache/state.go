package cache

import (
	"time"

	"realty-inventory/core/inventory"
)

// FolderState describes what the cache holds for a folder, without syncing it.
type FolderState struct {
	Folder    inventory.FolderConfig `json:"folder"`
	Cached    bool                   `json:"cached"`
	FetchedAt *time.Time             `json:"fetched_at,omitempty"`
	Age       string                 `json:"age,omitempty"`
	Records   int                    `json:"records"`
	Files     int                    `json:"files"`
	Partial   bool                   `json:"partial"`
	Expired   bool                   `json:"expired"`
	LastError string                 `json:"last_error,omitempty"`
	FailedAt  *time.Time             `json:"failed_at,omitempty"`
}

// Peek returns the current snapshot of a folder, if any, without syncing.
// The snapshot is flagged stale when its last refresh failed.
func (c *InventoryCache) Peek(folderID string) (*inventory.Snapshot, bool) {
	e := c.load(folderID)
	if e.snapshot == nil {
		return nil, false
	}
	if e.lastErr != nil {
		return e.snapshot.MarkStale(e.lastErr), true
	}
	return e.snapshot, true
}

// States reports the cache state of every configured folder in configuration order.
func (c *InventoryCache) States() []FolderState {
	now := c.now()
	states := make([]FolderState, 0, len(c.folders))
	for _, f := range c.folders {
		e := c.load(f.RemoteFolderID)
		st := FolderState{Folder: f}
		if e.snapshot != nil {
			fetched := e.snapshot.FetchedAt
			age := e.snapshot.Age(now)
			st.Cached = true
			st.FetchedAt = &fetched
			st.Age = age.Round(time.Second).String()
			st.Records = len(e.snapshot.Records)
			st.Files = len(e.snapshot.SourceFileVersions) + len(e.snapshot.Errors)
			st.Partial = e.snapshot.Partial
			st.Expired = age > c.cfg.TTL
		}
		if e.lastErr != nil {
			failed := e.failedAt
			st.LastError = e.lastErr.Error()
			st.FailedAt = &failed
		}
		states = append(states, st)
	}
	return states
}
