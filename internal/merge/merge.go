package merge

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/suyashkumar/dicom/pkg/tag"

	"breakdb/internal/parse"
	"breakdb/internal/tags"
)

// Options controls how tolerant the fold is of disagreeing fragments.
type Options struct {
	// SkipBroken drops a fragment whose scalar tags conflict with the
	// accumulated record instead of failing the whole image.
	SkipBroken bool
	// IgnoreDuplicates tolerates fragments whose pixel payloads differ
	// from the one already folded in, keeping the first payload seen.
	IgnoreDuplicates bool

	Logger *log.Logger
}

// scalarTags are the tags whose values must agree across all fragments
// of an image. Pixel data is handled apart: its payloads compare by
// digest and disagree with their own error.
var scalarTags = []tag.Tag{
	tags.SOPClass,
	tags.SOPInstance,
	tags.Series,
	tags.Study,
	tags.BodyPart,
	tags.PixelColumns,
	tags.PixelRows,
	tags.ScalingIntercept,
	tags.ScalingSlope,
	tags.ScalingType,
	tags.WindowCenter,
	tags.WindowWidth,
	tags.WindowFunction,
}

// Records folds all fragments of one image into a single record. The
// fold runs in discovery order and never mutates its inputs; each
// source either extends the accumulated record, agrees with it, or
// conflicts.
func Records(fragments []parse.Record, opts Options) (parse.Record, error) {
	merged := parse.NewRecord()

	for _, src := range fragments {
		next, err := fold(merged, src, opts)
		if err != nil {
			instance := src.StringField(tags.SOPInstance)
			// SkipBroken covers tag conflicts only. A pixel payload
			// mismatch has its own tolerance flag; untolerated, it
			// aborts the group regardless.
			if opts.SkipBroken && !IsDuplicate(err) {
				if opts.Logger != nil {
					opts.Logger.Warn("could not merge dataset fragment",
						"instance", instance, "err", err)
				}
				continue
			}
			return parse.Record{}, &MergingError{Instance: instance, Err: err}
		}
		merged = next
	}
	return merged, nil
}

// fold merges a single source record into dst, returning a new record.
func fold(dst, src parse.Record, opts Options) (parse.Record, error) {
	out := parse.NewRecord()
	for t, v := range dst.Fields {
		out.Fields[t] = v
	}
	out.Annotations = append(out.Annotations, dst.Annotations...)

	for _, t := range scalarTags {
		sv, ok := src.Fields[t]
		if !ok {
			continue
		}
		dv, ok := out.Fields[t]
		if ok && dv != sv {
			return parse.Record{}, &TagConflict{Tag: t, Dst: dv, Src: sv}
		}
		out.Fields[t] = sv
	}

	if err := foldPixels(&out, src, opts); err != nil {
		return parse.Record{}, err
	}

	out.Annotations = append(out.Annotations, src.Annotations...)
	return out, nil
}

// foldPixels merges the pixel payload, comparing by digest. A payload
// mismatch is its own condition: with IgnoreDuplicates set the first
// payload wins and the duplicate is logged.
func foldPixels(out *parse.Record, src parse.Record, opts Options) error {
	sv, ok := src.Fields[tags.PixelData]
	if !ok {
		return nil
	}
	sp, ok := sv.(parse.PixelPayload)
	if !ok {
		return &tags.MissingTag{Tag: tags.PixelData}
	}

	dv, ok := out.Fields[tags.PixelData]
	if !ok {
		out.Fields[tags.PixelData] = sp
		return nil
	}
	dp := dv.(parse.PixelPayload)
	if dp.Digest == sp.Digest {
		return nil
	}
	if opts.IgnoreDuplicates {
		if opts.Logger != nil {
			opts.Logger.Warn("ignoring duplicate pixel data",
				"kept", dp.Path, "dropped", sp.Path)
		}
		return nil
	}
	return &DuplicateDICOM{Dst: dp.Path, Src: sp.Path}
}

// IsDuplicate reports whether an error chain contains a pixel payload
// mismatch.
func IsDuplicate(err error) bool {
	var dup *DuplicateDICOM
	return errors.As(err, &dup)
}
