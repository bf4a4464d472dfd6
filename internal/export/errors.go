package export

import "fmt"

// EntryFormatError wraps any failure while formatting one database row
// as an annotated dataset entry.
type EntryFormatError struct {
	Index  int
	Path   string
	Format string
	Err    error
}

func (e *EntryFormatError) Error() string {
	return fmt.Sprintf("could not format row %d as %s with image %s: %v",
		e.Index, e.Format, e.Path, e.Err)
}

func (e *EntryFormatError) Unwrap() error { return e.Err }
