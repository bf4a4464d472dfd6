package database

import (
	"encoding/json"
	"fmt"
	"strconv"

	"breakdb/internal/parse"
)

// cells renders an entry as plain strings in column order. The
// annotation column is a JSON array of coordinate arrays, which every
// format carries verbatim inside a single cell.
func (e Entry) cells() ([]string, error) {
	annot, err := marshalAnnotations(e.Annotations)
	if err != nil {
		return nil, err
	}
	return []string{
		e.ID,
		e.Series,
		e.Study,
		strconv.FormatBool(e.Classification),
		e.BodyPart,
		strconv.Itoa(e.Width),
		strconv.Itoa(e.Height),
		e.FilePath,
		strconv.FormatBool(e.Scaling),
		strconv.FormatBool(e.Windowing),
		annot,
	}, nil
}

// entryFromCells parses an entry from plain strings in column order.
func entryFromCells(cells []string) (Entry, error) {
	if len(cells) != len(Columns) {
		return Entry{}, fmt.Errorf("row has %d columns, want %d", len(cells), len(Columns))
	}

	classification, err := strconv.ParseBool(cells[3])
	if err != nil {
		return Entry{}, fmt.Errorf("classification column: %w", err)
	}
	width, err := strconv.Atoi(cells[5])
	if err != nil {
		return Entry{}, fmt.Errorf("width column: %w", err)
	}
	height, err := strconv.Atoi(cells[6])
	if err != nil {
		return Entry{}, fmt.Errorf("height column: %w", err)
	}
	scaling, err := strconv.ParseBool(cells[8])
	if err != nil {
		return Entry{}, fmt.Errorf("scaling column: %w", err)
	}
	windowing, err := strconv.ParseBool(cells[9])
	if err != nil {
		return Entry{}, fmt.Errorf("windowing column: %w", err)
	}
	annots, err := unmarshalAnnotations(cells[10])
	if err != nil {
		return Entry{}, fmt.Errorf("annotation column: %w", err)
	}

	return Entry{
		ID:             cells[0],
		Series:         cells[1],
		Study:          cells[2],
		Classification: classification,
		BodyPart:       cells[4],
		Width:          width,
		Height:         height,
		FilePath:       cells[7],
		Scaling:        scaling,
		Windowing:      windowing,
		Annotations:    annots,
	}, nil
}

func marshalAnnotations(annots []parse.Annotation) (string, error) {
	if annots == nil {
		annots = []parse.Annotation{}
	}
	b, err := json.Marshal(annots)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalAnnotations(s string) ([]parse.Annotation, error) {
	if s == "" {
		return nil, nil
	}
	var annots []parse.Annotation
	if err := json.Unmarshal([]byte(s), &annots); err != nil {
		return nil, err
	}
	if len(annots) == 0 {
		return nil, nil
	}
	return annots, nil
}
