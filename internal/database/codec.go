package database

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader decodes a whole database from a file on disk.
type Reader interface {
	Read(path string) (*Table, error)
}

// Writer encodes a whole database to a file on disk.
type Writer interface {
	Write(table *Table, path string) error
}

// UnsupportedFormat reports a database path whose extension maps to no
// known codec.
type UnsupportedFormat struct {
	Path string
}

func (e *UnsupportedFormat) Error() string {
	return fmt.Sprintf("no database format for %s", e.Path)
}

var readers = map[string]Reader{
	".csv":  csvReader{},
	".json": jsonReader{},
	".xlsx": xlsxReader{},
}

var writers = map[string]Writer{
	".csv":  csvWriter{},
	".json": jsonWriter{},
	".xlsx": xlsxWriter{},
}

// ReaderFor selects the reader for a database path by extension.
func ReaderFor(path string) (Reader, error) {
	r, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &UnsupportedFormat{Path: path}
	}
	return r, nil
}

// WriterFor selects the writer for a database path by extension.
func WriterFor(path string) (Writer, error) {
	w, ok := writers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &UnsupportedFormat{Path: path}
	}
	return w, nil
}

// Read loads a database, choosing the format from the path.
func Read(path string) (*Table, error) {
	r, err := ReaderFor(path)
	if err != nil {
		return nil, err
	}
	return r.Read(path)
}

// Write stores a database, choosing the format from the path.
func Write(table *Table, path string) error {
	w, err := WriterFor(path)
	if err != nil {
		return err
	}
	return w.Write(table, path)
}

// Convert reads a database in one format and writes it out in another,
// the formats chosen from the two paths.
func Convert(from, to string) error {
	table, err := Read(from)
	if err != nil {
		return err
	}
	return Write(table, to)
}
