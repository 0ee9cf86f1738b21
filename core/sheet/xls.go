package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

// parseXLS reads a legacy BIFF workbook. The reader panics on some damaged
// files, so any panic is reported as ErrParse.
func parseXLS(data []byte) (grids []Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grids, err = nil, fmt.Errorf("%w: read xls workbook: %v", ErrParse, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open xls workbook: %w", ErrParse, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: no workbook stream", ErrParse)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		grid := Grid{Name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			grid.Rows = append(grid.Rows, xlsRow(ws, r))
		}
		grids = append(grids, trimTrailingEmpty(grid))
	}
	return grids, nil
}

// xlsRow returns the cell text of row r. Rows the sheet never stored come back empty.
func xlsRow(ws *xls.WorkSheet, r int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := ws.Row(r)
	for c := 0; c < row.LastCol(); c++ {
		cells = append(cells, strings.TrimSpace(row.Col(c)))
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func trimTrailingEmpty(g Grid) Grid {
	for len(g.Rows) > 0 && len(g.Rows[len(g.Rows)-1]) == 0 {
		g.Rows = g.Rows[:len(g.Rows)-1]
	}
	return g
}
