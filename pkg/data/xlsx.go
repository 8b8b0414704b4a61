package data

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

// ImportXLSX reads a collection from a sheet of an .xlsx workbook. An empty
// sheet name selects the first sheet. The sheet uses the same layout as CSV.
func ImportXLSX(path, sheet string) (*Collection, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no sheet named %q", path, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	c, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	return c, nil
}

// ExportXLSX writes c to a new workbook at path: X in column A, one column
// per series, with a header row of series names.
func ExportXLSX(c *Collection, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "x"); err != nil {
		return err
	}

	// Rows are keyed by X so series sampled at the same X share a row.
	rowOf := make(map[float64]int)
	next := 2
	for col, s := range c.Series {
		head, err := excelize.CoordinatesToCellName(col+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, head, s.Name); err != nil {
			return err
		}
		for _, p := range s.Points {
			row, ok := rowOf[p.X]
			if !ok {
				row = next
				rowOf[p.X] = row
				next++
				if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.X); err != nil {
					return err
				}
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, p.Y); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
