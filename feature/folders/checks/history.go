package checks

import (
	"context"
)

// SchemaChecker reports the columns a table lacks.
type SchemaChecker interface {
	Check(ctx context.Context) ([]string, error)
}

// HistoryReport is the result of checking the sync history table.
type HistoryReport struct {
	Enabled        bool     `json:"enabled"`
	Status         string   `json:"status"` // "ok", "missing_columns", "error", "disabled"
	MissingColumns []string `json:"missing_columns"`
	Error          string   `json:"error,omitempty"`
}

// CheckHistory verifies the history table against the run model.
// A nil checker means history is not configured.
func CheckHistory(ctx context.Context, checker SchemaChecker) HistoryReport {
	if checker == nil {
		return HistoryReport{Status: "disabled", MissingColumns: []string{}}
	}

	report := HistoryReport{Enabled: true, MissingColumns: []string{}}
	missing, err := checker.Check(ctx)
	if err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return report
	}
	if len(missing) > 0 {
		report.Status = "missing_columns"
		report.MissingColumns = missing
		return report
	}
	report.Status = "ok"
	return report
}
