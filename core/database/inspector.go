package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Column describes a table column as reported by the database.
type Column struct {
	Name string
	Type string
}

// TableColumns lists the columns of a table, names and types lower-cased.
// A missing table yields no columns and no error.
func TableColumns(ctx context.Context, db *gorm.DB, table string) ([]Column, error) {
	db = db.WithContext(ctx)

	if db.Dialector.Name() == DriverSQLite {
		var rows []struct {
			Name string
			Type string
		}
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
		cols := make([]Column, 0, len(rows))
		for _, r := range rows {
			cols = append(cols, Column{Name: strings.ToLower(r.Name), Type: strings.ToLower(r.Type)})
		}
		return cols, nil
	}

	var rows []struct {
		Field string
		Type  string
	}
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	cols := make([]Column, 0, len(rows))
	for _, r := range rows {
		cols = append(cols, Column{Name: strings.ToLower(r.Field), Type: strings.ToLower(r.Type)})
	}
	return cols, nil
}

// MissingColumns returns the expected column names absent from table, in order.
func MissingColumns(ctx context.Context, db *gorm.DB, table string, expected []string) ([]string, error) {
	cols, err := TableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		present[c.Name] = struct{}{}
	}

	var missing []string
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
