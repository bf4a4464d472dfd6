// Package merge folds the per-file records of the parse package into
// one canonical record per image, detecting conflicts between fragments
// along the way, and projects the result into database rows.
package merge

import (
	"breakdb/internal/parse"
	"breakdb/internal/tags"
)

// Identity is the key two fragments must share to describe the same
// image: the SOP instance they belong to and the series that owns it.
type Identity struct {
	Instance string
	Series   string
}

// Organize groups parsed records by the image they describe, preserving
// discovery order within each group. Empty records are dropped without
// comment: they only occur when parsing was told to skip broken files,
// so grouping proceeds best-effort over whatever survived.
func Organize(records []parse.Record) (map[Identity][]parse.Record, []Identity) {
	groups := make(map[Identity][]parse.Record)
	var order []Identity

	for _, rec := range records {
		if rec.Empty() {
			continue
		}
		id := Identity{
			Instance: rec.StringField(tags.SOPInstance),
			Series:   rec.StringField(tags.Series),
		}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], rec)
	}
	return groups, order
}
