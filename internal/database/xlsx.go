package database

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

type xlsxWriter struct{}

func (xlsxWriter) Write(table *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return err
		}
	}

	for row, e := range table.Entries {
		cells, err := e.cells()
		if err != nil {
			return err
		}
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

type xlsxReader struct{}

func (xlsxReader) Read(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty worksheet", path)
	}
	for i, name := range Columns {
		if i >= len(rows[0]) || rows[0][i] != name {
			return nil, fmt.Errorf("%s: header column %d, want %q", path, i, name)
		}
	}

	table := &Table{}
	for _, row := range rows[1:] {
		// Trailing empty cells are not returned by the reader.
		cells := make([]string, len(Columns))
		copy(cells, row)
		entry, err := entryFromCells(cells)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		table.Append(entry)
	}
	return table, nil
}
