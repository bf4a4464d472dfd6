package merge

import (
	"github.com/suyashkumar/dicom/pkg/tag"

	"breakdb/internal/database"
	"breakdb/internal/parse"
	"breakdb/internal/tags"
)

// MakeDatabaseEntry projects a merged record onto a database row. The
// identity, the pixel dimensions and the pixel payload location are
// mandatory; a record that lacks any of them cannot be a usable row.
// Annotations are deduplicated by exact coordinate equality, since the
// same fragment may legitimately be discovered more than once.
func MakeDatabaseEntry(rec parse.Record) (database.Entry, error) {
	for _, t := range []tag.Tag{
		tags.SOPInstance,
		tags.Series,
		tags.PixelColumns,
		tags.PixelRows,
		tags.PixelData,
	} {
		if _, ok := rec.Fields[t]; !ok {
			return database.Entry{}, &tags.MissingTag{Tag: t}
		}
	}

	payload, ok := rec.Fields[tags.PixelData].(parse.PixelPayload)
	if !ok {
		return database.Entry{}, &tags.MissingTag{Tag: tags.PixelData}
	}

	bodyPart := rec.StringField(tags.BodyPart)
	if bodyPart == "" {
		bodyPart = database.UnknownBodyPart
	}

	annots := dedupeAnnotations(rec.Annotations)

	return database.Entry{
		ID:             rec.StringField(tags.SOPInstance),
		Series:         rec.StringField(tags.Series),
		Study:          rec.StringField(tags.Study),
		Classification: len(annots) > 0,
		BodyPart:       bodyPart,
		Width:          rec.IntField(tags.PixelColumns),
		Height:         rec.IntField(tags.PixelRows),
		FilePath:       payload.Path,
		Scaling:        hasField(rec, tags.ScalingIntercept) && hasField(rec, tags.ScalingSlope),
		Windowing:      hasField(rec, tags.WindowCenter) && hasField(rec, tags.WindowWidth),
		Annotations:    annots,
	}, nil
}

func hasField(rec parse.Record, t tag.Tag) bool {
	_, ok := rec.Fields[t]
	return ok
}

// dedupeAnnotations removes exact coordinate duplicates, keeping first
// occurrences in order.
func dedupeAnnotations(annots []parse.Annotation) []parse.Annotation {
	var out []parse.Annotation
	for _, a := range annots {
		seen := false
		for _, kept := range out {
			if kept.Equal(a) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, a.Clone())
		}
	}
	return out
}
