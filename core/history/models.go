package history

import "time"

const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// SyncRun is one sync attempt of a folder.
type SyncRun struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	FolderID    string    `gorm:"column:folder_id;size:255;index" json:"folder_id"`
	Project     string    `gorm:"column:project;size:255" json:"project"`
	StartedAt   time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt  time.Time `gorm:"column:finished_at" json:"finished_at"`
	FilesListed int       `gorm:"column:files_listed" json:"files_listed"`
	FilesReused int       `gorm:"column:files_reused" json:"files_reused"`
	FilesParsed int       `gorm:"column:files_parsed" json:"files_parsed"`
	FilesFailed int       `gorm:"column:files_failed" json:"files_failed"`
	Records     int       `gorm:"column:records" json:"records"`
	Status      string    `gorm:"column:status;size:16" json:"status"`
	Error       string    `gorm:"column:error;type:text" json:"error,omitempty"`
}

// TableName overrides the table name.
func (SyncRun) TableName() string {
	return "inventory_sync_runs"
}

// Duration returns how long the run took.
func (r SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Columns lists the column names of the runs table.
var Columns = []string{
	"id", "folder_id", "project", "started_at", "finished_at",
	"files_listed", "files_reused", "files_parsed", "files_failed",
	"records", "status", "error",
}
