package normalize

import (
	"strings"

	"realty-inventory/core/inventory"
	"realty-inventory/core/schema"
	"realty-inventory/core/utils"

	"go.uber.org/zap"
)

// Normalizer builds records from data rows.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize converts one data row. ok is false for rows that carry no data in any
// mapped column, and for rows without a project when fallbackProject is blank.
func (n *Normalizer) Normalize(row []string, m schema.Mapping, fallbackProject, sourceFileID string, rowIndex int) (inventory.Record, bool) {
	if isEmptyRow(row, m) {
		return inventory.Record{}, false
	}

	project := utils.CollapseSpaces(cell(row, m, schema.FieldProject))
	if project == "" {
		project = strings.TrimSpace(fallbackProject)
	}
	if project == "" {
		n.logger.Debug("Row skipped, no project",
			zap.String("file_id", sourceFileID),
			zap.Int("row", rowIndex))
		return inventory.Record{}, false
	}

	rec := inventory.Record{
		Project:        project,
		Status:         inventory.StatusUnknown,
		SourceFileID:   sourceFileID,
		SourceRowIndex: rowIndex,
	}
	if m.Has(schema.FieldRooms) {
		rec.Rooms = ParseRooms(cell(row, m, schema.FieldRooms))
	}
	if m.Has(schema.FieldArea) {
		rec.AreaSqm = ParseNumber(cell(row, m, schema.FieldArea))
	}
	if m.Has(schema.FieldPrice) {
		rec.Price = ParseNumber(cell(row, m, schema.FieldPrice))
	}
	if m.Has(schema.FieldStatus) {
		rec.Status = ParseStatus(cell(row, m, schema.FieldStatus))
	}
	if m.Has(schema.FieldFloor) {
		rec.Floor = ParseInt(cell(row, m, schema.FieldFloor))
	}
	return rec, true
}

func cell(row []string, m schema.Mapping, f schema.Field) string {
	col := m.Column(f)
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// isEmptyRow reports whether every mapped cell is blank. Unmapped columns such as
// row numbers or notes do not make a row meaningful.
func isEmptyRow(row []string, m schema.Mapping) bool {
	for _, f := range schema.Fields {
		if m.Has(f) && !utils.IsBlank(cell(row, m, f)) {
			return false
		}
	}
	return true
}
