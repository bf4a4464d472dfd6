package parse

import "fmt"

// ParsingError wraps any failure encountered while reading a single
// DICOM file, attaching the path of the offending file.
type ParsingError struct {
	Path string
	Err  error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Err)
}

func (e *ParsingError) Unwrap() error { return e.Err }
