package inventory

import (
	"strings"
	"time"
)

// Status is the sale state of an apartment.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusSold      Status = "SOLD"
	StatusUnknown   Status = "UNKNOWN"
)

// ParseStatusName parses an enum name such as "available" or "SOLD".
// It does not interpret spreadsheet vocabulary; see the normalize package for that.
func ParseStatusName(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusReserved:
		return StatusReserved, true
	case StatusSold:
		return StatusSold, true
	case StatusUnknown:
		return StatusUnknown, true
	default:
		return "", false
	}
}

// FolderConfig binds a project name to a remote folder.
type FolderConfig struct {
	// ProjectName is used as the record project when a sheet has no project column.
	ProjectName string `yaml:"project" json:"project"`
	// RemoteFolderID is the provider specific folder identifier
	// (object key prefix for object storage, folder id for Drive).
	RemoteFolderID string `yaml:"folder_id" json:"folder_id"`
}

// Record is a canonical inventory unit.
type Record struct {
	Project        string   `json:"project"`
	Rooms          *int     `json:"rooms,omitempty"`
	AreaSqm        *float64 `json:"area_sqm,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Status         Status   `json:"status"`
	Floor          *int     `json:"floor,omitempty"`
	SourceFileID   string   `json:"source_file_id"`
	SourceRowIndex int      `json:"source_row_index"`
}

// FileError describes a file that could not be read during a sync.
type FileError struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// Snapshot is the inventory of a single folder at FetchedAt.
type Snapshot struct {
	FolderID           string            `json:"folder_id"`
	Project            string            `json:"project"`
	Records            []Record          `json:"records"`
	FetchedAt          time.Time         `json:"fetched_at"`
	SourceFileVersions map[string]string `json:"source_file_versions"`

	// Errors lists files that failed during the sync that produced this snapshot.
	Errors []FileError `json:"errors,omitempty"`
	// Partial is set when some files of the folder could not be read.
	Partial bool `json:"partial"`
	// Stale is set by the cache when a refresh failed and this older snapshot is served instead.
	Stale bool `json:"stale"`
	// RefreshError holds the reason the last refresh failed when Stale is set.
	RefreshError string `json:"refresh_error,omitempty"`
}

// Age returns how old the snapshot is relative to now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// RecordsByFile groups the snapshot records by source file id, keeping row order.
func (s *Snapshot) RecordsByFile() map[string][]Record {
	byFile := make(map[string][]Record)
	for _, r := range s.Records {
		byFile[r.SourceFileID] = append(byFile[r.SourceFileID], r)
	}
	return byFile
}

// MarkStale returns a copy of s flagged as stale. The record slice is shared, not copied;
// snapshots are never mutated in place so sharing is safe.
func (s *Snapshot) MarkStale(reason error) *Snapshot {
	cp := *s
	cp.Stale = true
	if reason != nil {
		cp.RefreshError = reason.Error()
	}
	return &cp
}
