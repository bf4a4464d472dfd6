package tags

import (
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Find returns the element carrying the given tag from a flat element
// list. It works both on top-level dataset elements and on the element
// list of a sequence item.
func Find(elems []*dicom.Element, t tag.Tag) (*dicom.Element, bool) {
	for _, e := range elems {
		if e.Tag == t {
			return e, true
		}
	}
	return nil, false
}

// Has reports whether the given tag is present in an element list.
func Has(elems []*dicom.Element, t tag.Tag) bool {
	_, ok := Find(elems, t)
	return ok
}

// HasSequence reports whether the given tag is present and holds a
// sequence value.
func HasSequence(elems []*dicom.Element, t tag.Tag) bool {
	e, ok := Find(elems, t)
	if !ok {
		return false
	}
	_, ok = e.Value.GetValue().([]*dicom.SequenceItemValue)
	return ok
}

// SequenceItems returns the element lists of every item in the sequence
// carried by the given tag.
func SequenceItems(elems []*dicom.Element, t tag.Tag) ([][]*dicom.Element, error) {
	e, ok := Find(elems, t)
	if !ok {
		return nil, &MissingSequence{Tag: t}
	}
	seq, ok := e.Value.GetValue().([]*dicom.SequenceItemValue)
	if !ok {
		return nil, &MalformedSequence{Tag: t}
	}
	items := make([][]*dicom.Element, len(seq))
	for i, item := range seq {
		sub, ok := item.GetValue().([]*dicom.Element)
		if !ok {
			return nil, &MalformedSequence{Tag: t}
		}
		items[i] = sub
	}
	return items, nil
}

// ItemAt returns the element list of the item at the given index of a
// sequence tag. An index past the end of the sequence is a malformed
// sequence, matching the strictness of the parser contract.
func ItemAt(elems []*dicom.Element, t tag.Tag, index int) ([]*dicom.Element, error) {
	items, err := SequenceItems(elems, t)
	if err != nil {
		return nil, err
	}
	if index >= len(items) {
		return nil, &MalformedSequence{Tag: t}
	}
	return items[index], nil
}

// String returns the first string value of the given tag.
func String(elems []*dicom.Element, t tag.Tag) (string, error) {
	e, ok := Find(elems, t)
	if !ok {
		return "", &MissingTag{Tag: t}
	}
	if vals, ok := e.Value.GetValue().([]string); ok && len(vals) > 0 {
		return strings.TrimSpace(vals[0]), nil
	}
	return "", &MissingTag{Tag: t}
}

// Int returns the first integer value of the given tag. Integer string
// values are converted.
func Int(elems []*dicom.Element, t tag.Tag) (int, error) {
	e, ok := Find(elems, t)
	if !ok {
		return 0, &MissingTag{Tag: t}
	}
	switch vals := e.Value.GetValue().(type) {
	case []int:
		if len(vals) > 0 {
			return vals[0], nil
		}
	case []string:
		if len(vals) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
			if err == nil {
				return n, nil
			}
		}
	}
	return 0, &MissingTag{Tag: t}
}

// Float returns the first floating-point value of the given tag.
// Decimal string values, as used by the scaling and windowing tags,
// are converted.
func Float(elems []*dicom.Element, t tag.Tag) (float64, error) {
	vals, err := Floats(elems, t)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// Floats returns every floating-point value of the given tag.
func Floats(elems []*dicom.Element, t tag.Tag) ([]float64, error) {
	e, ok := Find(elems, t)
	if !ok {
		return nil, &MissingTag{Tag: t}
	}
	switch vals := e.Value.GetValue().(type) {
	case []float64:
		if len(vals) > 0 {
			return vals, nil
		}
	case []int:
		if len(vals) > 0 {
			out := make([]float64, len(vals))
			for i, v := range vals {
				out[i] = float64(v)
			}
			return out, nil
		}
	case []string:
		if len(vals) > 0 {
			out := make([]float64, 0, len(vals))
			for _, v := range vals {
				f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err != nil {
					return nil, &MissingTag{Tag: t}
				}
				out = append(out, f)
			}
			return out, nil
		}
	}
	return nil, &MissingTag{Tag: t}
}
