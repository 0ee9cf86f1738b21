package history

import (
	"context"
	"fmt"

	"realty-inventory/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder stores and lists sync runs.
type Recorder interface {
	Record(ctx context.Context, run *SyncRun) error
	Recent(ctx context.Context, folderID string, limit int) ([]SyncRun, error)
}

// GormRecorder keeps runs in a SQL database.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder creates a recorder on db. Call Migrate before first use.
func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Migrate creates or updates the runs table.
func (r *GormRecorder) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SyncRun{}); err != nil {
		return fmt.Errorf("failed to migrate sync history: %w", err)
	}
	return nil
}

// Check returns the columns the runs table lacks, if any.
func (r *GormRecorder) Check(ctx context.Context) ([]string, error) {
	return database.MissingColumns(ctx, r.db, SyncRun{}.TableName(), Columns)
}

// Record inserts a run, assigning an id when it has none.
func (r *GormRecorder) Record(ctx context.Context, run *SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// Recent returns the latest runs of a folder, newest first.
func (r *GormRecorder) Recent(ctx context.Context, folderID string, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []SyncRun
	err := r.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sync runs: %w", err)
	}
	return runs, nil
}

// Nop discards runs.
type Nop struct{}

func (Nop) Record(context.Context, *SyncRun) error { return nil }

func (Nop) Recent(context.Context, string, int) ([]SyncRun, error) { return nil, nil }
