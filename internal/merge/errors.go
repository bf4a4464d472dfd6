package merge

import (
	"fmt"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// TagConflict reports that two fragments of the same image carry
// different values for a tag whose value must be identical.
type TagConflict struct {
	Tag tag.Tag
	Dst any
	Src any
}

func (e *TagConflict) Error() string {
	return fmt.Sprintf("tag %s differs between expected identical datasets (%v vs %v)",
		e.Tag, e.Dst, e.Src)
}

// DuplicateDICOM reports that two fragments of the same image carry
// pixel payloads with different content.
type DuplicateDICOM struct {
	Dst string
	Src string
}

func (e *DuplicateDICOM) Error() string {
	return fmt.Sprintf("pixel data differs between %s and %s for the same image", e.Dst, e.Src)
}

// MergingError wraps any failure while folding the fragments of one
// image into a database row, attaching the image's identity.
type MergingError struct {
	Instance string
	Err      error
}

func (e *MergingError) Error() string {
	return fmt.Sprintf("could not merge datasets for %s: %v", e.Instance, e.Err)
}

func (e *MergingError) Unwrap() error { return e.Err }
