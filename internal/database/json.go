package database

import (
	"encoding/json"
	"fmt"
	"os"

	"breakdb/internal/parse"
)

// jsonEntry is the wire form of a row: one object per row with the
// column names as keys, the whole database an array of such objects.
type jsonEntry struct {
	ID             string             `json:"ID"`
	Series         string             `json:"Series"`
	Study          string             `json:"Study"`
	Classification bool               `json:"Classification"`
	BodyPart       string             `json:"Body Part"`
	Width          int                `json:"Width"`
	Height         int                `json:"Height"`
	FilePath       string             `json:"File Path"`
	Scaling        bool               `json:"Scaling"`
	Windowing      bool               `json:"Windowing"`
	Annotations    []parse.Annotation `json:"Annotation"`
}

type jsonWriter struct{}

func (jsonWriter) Write(table *Table, path string) error {
	rows := make([]jsonEntry, len(table.Entries))
	for i, e := range table.Entries {
		annots := e.Annotations
		if annots == nil {
			annots = []parse.Annotation{}
		}
		rows[i] = jsonEntry{
			ID:             e.ID,
			Series:         e.Series,
			Study:          e.Study,
			Classification: e.Classification,
			BodyPart:       e.BodyPart,
			Width:          e.Width,
			Height:         e.Height,
			FilePath:       e.FilePath,
			Scaling:        e.Scaling,
			Windowing:      e.Windowing,
			Annotations:    annots,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return f.Close()
}

type jsonReader struct{}

func (jsonReader) Read(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []jsonEntry
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	table := &Table{}
	for _, r := range rows {
		annots := r.Annotations
		if len(annots) == 0 {
			annots = nil
		}
		table.Append(Entry{
			ID:             r.ID,
			Series:         r.Series,
			Study:          r.Study,
			Classification: r.Classification,
			BodyPart:       r.BodyPart,
			Width:          r.Width,
			Height:         r.Height,
			FilePath:       r.FilePath,
			Scaling:        r.Scaling,
			Windowing:      r.Windowing,
			Annotations:    annots,
		})
	}
	return table, nil
}
