// Package database defines the collated fracture database: one row per
// merged X-ray image, together with readers and writers for the disk
// formats the row set travels in.
package database

import (
	"breakdb/internal/parse"
)

// Column names, in row order. Every format writes and reads columns in
// exactly this order.
var Columns = []string{
	"ID",
	"Series",
	"Study",
	"Classification",
	"Body Part",
	"Width",
	"Height",
	"File Path",
	"Scaling",
	"Windowing",
	"Annotation",
}

// UnknownBodyPart is the sentinel stored when no file in a merged
// record carried the examined body part.
const UnknownBodyPart = "Unknown"

// Entry is a single database row describing one collated image.
//
// Scaling and Windowing only record whether those parameter groups were
// seen: exporters re-read the file at FilePath for the actual values.
type Entry struct {
	ID             string
	Series         string
	Study          string
	Classification bool
	BodyPart       string
	Width          int
	Height         int
	FilePath       string
	Scaling        bool
	Windowing      bool
	Annotations    []parse.Annotation
}

// Table is an ordered collection of entries, the in-memory form of a
// whole database.
type Table struct {
	Entries []Entry
}

// Append adds an entry to the end of the table.
func (t *Table) Append(e Entry) {
	t.Entries = append(t.Entries, e)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Entries)
}
