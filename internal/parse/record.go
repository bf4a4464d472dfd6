// Package parse extracts flat attribute records from individual DICOM
// files. Every file contributes at most one Record; several records may
// later be folded into a single database row by the merge package.
package parse

import (
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Annotation is a closed polyline stored as alternating x,y coordinate
// values. A well-formed fracture annotation always holds 5 points, the
// last closing the polygon, for 10 values total.
type Annotation []float64

// Equal reports whether two annotations carry exactly the same
// coordinate sequence.
func (a Annotation) Equal(b Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the annotation. Geometry transforms operate
// on copies so a stored original is never mutated in place.
func (a Annotation) Clone() Annotation {
	out := make(Annotation, len(a))
	copy(out, a)
	return out
}

// PixelPayload identifies a pixel buffer without retaining it: the
// digest stands in for the bytes during conflict detection and the path
// records which file actually carries them.
type PixelPayload struct {
	Digest uint64
	Path   string
}

// Record is the parsed contribution of exactly one DICOM file. Scalar
// tag values live in Fields keyed by tag address; polyline annotations
// are kept apart because they concatenate rather than conflict when
// records merge.
type Record struct {
	Fields      map[tag.Tag]any
	Annotations []Annotation
}

// NewRecord returns an empty record ready to be populated.
func NewRecord() Record {
	return Record{Fields: make(map[tag.Tag]any)}
}

// Empty reports whether the record carries no data at all, which is how
// a skipped broken file is represented.
func (r Record) Empty() bool {
	return len(r.Fields) == 0 && len(r.Annotations) == 0
}

// StringField returns the string value stored under a tag, or "" when
// the tag is absent or holds a different type.
func (r Record) StringField(t tag.Tag) string {
	s, _ := r.Fields[t].(string)
	return s
}

// IntField returns the integer value stored under a tag, or 0 when the
// tag is absent or holds a different type.
func (r Record) IntField(t tag.Tag) int {
	n, _ := r.Fields[t].(int)
	return n
}

// FloatField returns the floating-point value stored under a tag, or 0
// when the tag is absent or holds a different type.
func (r Record) FloatField(t tag.Tag) float64 {
	f, _ := r.Fields[t].(float64)
	return f
}
