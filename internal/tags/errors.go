package tags

import (
	"fmt"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// MissingTag reports that a tag required for an operation is absent
// from a dataset.
type MissingTag struct {
	Tag tag.Tag
}

func (e *MissingTag) Error() string {
	return fmt.Sprintf("tag %s is expected but missing", e.Tag)
}

// MissingSequence reports that an expected sequence tag is absent.
type MissingSequence struct {
	Tag tag.Tag
}

func (e *MissingSequence) Error() string {
	return fmt.Sprintf("sequence %s is expected but missing", e.Tag)
}

// MalformedSequence reports that a tag is present but is not a usable
// sequence (wrong value type, or too few items for the requested index).
type MalformedSequence struct {
	Tag tag.Tag
}

func (e *MalformedSequence) Error() string {
	return fmt.Sprintf("tag %s is not a valid sequence", e.Tag)
}
