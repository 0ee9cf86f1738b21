package foldersync

import (
	"fmt"

	"realty-inventory/core/inventory"
)

// SyncFailed reports a sync that did not produce a complete snapshot.
// Partial is set when some files were read; callers decide whether to serve it.
type SyncFailed struct {
	FolderID string
	Partial  *inventory.Snapshot
	Cause    error
}

func (e *SyncFailed) Error() string {
	if e.Partial != nil {
		return fmt.Sprintf("sync of folder %s incomplete (%d files failed): %v", e.FolderID, len(e.Partial.Errors), e.Cause)
	}
	return fmt.Sprintf("sync of folder %s failed: %v", e.FolderID, e.Cause)
}

func (e *SyncFailed) Unwrap() error {
	return e.Cause
}
