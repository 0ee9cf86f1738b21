package checks

import (
	"context"

	"realty-inventory/core/inventory"
	"realty-inventory/core/remote"

	"golang.org/x/sync/errgroup"
)

// Lister lists the files of a remote folder.
type Lister interface {
	ListFiles(ctx context.Context, folderID string) ([]remote.FileInfo, error)
}

// AccessReport is the result of listing one configured folder.
type AccessReport struct {
	FolderID     string   `json:"folder_id"`
	Project      string   `json:"project"`
	Status       string   `json:"status"` // "ok", "empty", "error"
	Spreadsheets []string `json:"spreadsheets"`
	Ignored      []string `json:"ignored"`
	Error        string   `json:"error,omitempty"`
}

// CheckAccess lists every folder and sorts its files into readable spreadsheets
// and ignored files. A folder that cannot be listed is reported, not returned as an error.
func CheckAccess(ctx context.Context, lister Lister, folders []inventory.FolderConfig) []AccessReport {
	reports := make([]AccessReport, len(folders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, f := range folders {
		g.Go(func() error {
			reports[i] = checkFolder(gctx, lister, f)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func checkFolder(ctx context.Context, lister Lister, f inventory.FolderConfig) AccessReport {
	report := AccessReport{
		FolderID:     f.RemoteFolderID,
		Project:      f.ProjectName,
		Spreadsheets: []string{},
		Ignored:      []string{},
	}

	files, err := lister.ListFiles(ctx, f.RemoteFolderID)
	if err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return report
	}

	for _, file := range files {
		if file.IsSpreadsheet() {
			report.Spreadsheets = append(report.Spreadsheets, file.Name)
		} else {
			report.Ignored = append(report.Ignored, file.Name)
		}
	}

	report.Status = "ok"
	if len(report.Spreadsheets) == 0 {
		report.Status = "empty"
	}
	return report
}
