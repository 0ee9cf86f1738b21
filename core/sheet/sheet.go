package sheet

import (
	"bytes"
	"errors"
	"fmt"

	"realty-inventory/core/remote"

	"github.com/xuri/excelize/v2"
)

// ErrParse is returned when a blob cannot be read as a spreadsheet.
var ErrParse = errors.New("spreadsheet parse failed")

// Grid is the cell text of one worksheet, row by row.
type Grid struct {
	Name string
	Rows [][]string
}

// RawSheet is a grid split at its header row.
type RawSheet struct {
	SourceFileID string
	SheetName    string
	// HeaderOffset is the index of the header row in the original grid.
	HeaderOffset int
	HeaderRow    []string
	DataRows     [][]string
}

// RowIndex returns the 0-based position of a data row in the original grid.
func (s RawSheet) RowIndex(dataRow int) int {
	return s.HeaderOffset + 1 + dataRow
}

// Parse reads every worksheet of the blob.
func Parse(blob *remote.Blob) ([]Grid, error) {
	switch blob.Format {
	case remote.FormatXLSX:
		return parseXLSX(blob.Data)
	case remote.FormatXLS:
		return parseXLS(blob.Data)
	case remote.FormatCSV:
		rows, err := parseCSV(blob.Data)
		if err != nil {
			return nil, err
		}
		return []Grid{{Name: blob.Name, Rows: rows}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", remote.ErrUnsupportedFormat, blob.Name)
	}
}

// Split separates the header row at index header from the rows that follow it.
func Split(grid Grid, header int, fileID string) RawSheet {
	s := RawSheet{SourceFileID: fileID, SheetName: grid.Name, HeaderOffset: header}
	if header < 0 || header >= len(grid.Rows) {
		return s
	}
	s.HeaderRow = grid.Rows[header]
	s.DataRows = grid.Rows[header+1:]
	return s
}

func parseXLSX(data []byte) ([]Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrParse, err)
	}
	defer f.Close()

	var grids []Grid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %w", ErrParse, name, err)
		}
		grids = append(grids, Grid{Name: name, Rows: rows})
	}
	return grids, nil
}
