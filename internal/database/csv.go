package database

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// columnQuoted marks which columns carry text and are therefore quoted
// on output. Numeric and boolean cells stay bare so a reader can
// recover their types without a schema.
var columnQuoted = []bool{
	true,  // ID
	true,  // Series
	true,  // Study
	false, // Classification
	true,  // Body Part
	false, // Width
	false, // Height
	true,  // File Path
	false, // Scaling
	false, // Windowing
	true,  // Annotation
}

type csvWriter struct{}

func (csvWriter) Write(table *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeCSVRow(w, Columns, nil); err != nil {
		return err
	}
	for _, e := range table.Entries {
		cells, err := e.cells()
		if err != nil {
			return err
		}
		if err := writeCSVRow(w, cells, columnQuoted); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// writeCSVRow emits one row, quoting the cells the mask marks as text.
// A nil mask quotes everything, which is how the header goes out.
func writeCSVRow(w *bufio.Writer, cells []string, quoted []bool) error {
	for i, cell := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		q := quoted == nil || quoted[i]
		if q {
			cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(cell); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

type csvReader struct{}

func (csvReader) Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Columns)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, fmt.Errorf("%s: header column %d is %q, want %q",
				path, i, header[i], name)
		}
	}

	table := &Table{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		entry, err := entryFromCells(record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		table.Append(entry)
	}
	return table, nil
}
