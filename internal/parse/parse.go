package parse

import (
	"hash/fnv"

	"github.com/suyashkumar/dicom"

	"breakdb/internal/tags"
)

// Structural constants for a well-formed fracture annotation object.
const (
	annotationPoints     = 5
	annotationDimensions = 2
	annotationValues     = annotationPoints * annotationDimensions
	annotationType       = "POLYLINE"
	annotationUnits      = "PIXEL"
)

// HasPixels reports whether a dataset carries a complete pixel group:
// columns, rows and the payload itself.
func HasPixels(ds *dicom.Dataset) bool {
	return tags.Has(ds.Elements, tags.PixelColumns) &&
		tags.Has(ds.Elements, tags.PixelRows) &&
		tags.Has(ds.Elements, tags.PixelData)
}

// HasScaling reports whether a dataset carries both linear scaling
// coefficients. The type tag is optional and does not gate presence.
func HasScaling(ds *dicom.Dataset) bool {
	return tags.Has(ds.Elements, tags.ScalingIntercept) &&
		tags.Has(ds.Elements, tags.ScalingSlope)
}

// HasWindowing reports whether a dataset carries both windowing
// parameters.
func HasWindowing(ds *dicom.Dataset) bool {
	return tags.Has(ds.Elements, tags.WindowCenter) &&
		tags.Has(ds.Elements, tags.WindowWidth)
}

// HasMisc reports whether a dataset carries the optional descriptive
// group.
func HasMisc(ds *dicom.Dataset) bool {
	return tags.Has(ds.Elements, tags.BodyPart)
}

// HasAnnotations reports whether a dataset carries at least one
// well-formed annotation object. Malformed objects are ignored here:
// a file whose every annotation is invalid simply has none.
func HasAnnotations(ds *dicom.Dataset) bool {
	if !tags.HasSequence(ds.Elements, tags.AnnotationSequence) {
		return false
	}
	items, err := tags.SequenceItems(ds.Elements, tags.AnnotationSequence)
	if err != nil {
		return false
	}
	for _, item := range items {
		objs, err := tags.SequenceItems(item, tags.AnnotationObject)
		if err != nil {
			continue
		}
		for _, obj := range objs {
			if _, err := parseAnnotation(obj); err == nil {
				return true
			}
		}
	}
	return false
}

// HasReference reports whether a dataset references another instance.
// Only a single reference is allowed: one sequence item carrying
// exactly the referenced image sequence and the owning series.
func HasReference(ds *dicom.Dataset) bool {
	items, err := tags.SequenceItems(ds.Elements, tags.ReferenceSequence)
	if err != nil || len(items) != 1 {
		return false
	}
	return len(items[0]) == 2 &&
		tags.Has(items[0], tags.ReferenceObject) &&
		tags.Has(items[0], tags.ReferenceSeries)
}

// ParseCommon extracts the identity tags every usable file must have.
func ParseCommon(ds *dicom.Dataset) (Record, error) {
	rec := NewRecord()
	for _, info := range tags.ByCategory(tags.Common) {
		v, err := tags.String(ds.Elements, info.Tag)
		if err != nil {
			return Record{}, err
		}
		rec.Fields[info.Tag] = v
	}
	return rec, nil
}

// ParsePixels extracts the pixel group. The payload itself is reduced
// to a digest plus the carrying file's path; the collated database
// never retains pixel buffers.
func ParsePixels(ds *dicom.Dataset, path string) (Record, error) {
	rec := NewRecord()

	cols, err := tags.Int(ds.Elements, tags.PixelColumns)
	if err != nil {
		return Record{}, err
	}
	rows, err := tags.Int(ds.Elements, tags.PixelRows)
	if err != nil {
		return Record{}, err
	}

	e, ok := tags.Find(ds.Elements, tags.PixelData)
	if !ok {
		return Record{}, &tags.MissingTag{Tag: tags.PixelData}
	}
	info, ok := e.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return Record{}, &tags.MissingTag{Tag: tags.PixelData}
	}

	rec.Fields[tags.PixelColumns] = cols
	rec.Fields[tags.PixelRows] = rows
	rec.Fields[tags.PixelData] = PixelPayload{Digest: pixelDigest(info), Path: path}
	return rec, nil
}

// ParseScaling extracts the scaling group. Intercept and slope are
// required; the rescale type rides along when present.
func ParseScaling(ds *dicom.Dataset) (Record, error) {
	rec := NewRecord()

	intercept, err := tags.Float(ds.Elements, tags.ScalingIntercept)
	if err != nil {
		return Record{}, err
	}
	slope, err := tags.Float(ds.Elements, tags.ScalingSlope)
	if err != nil {
		return Record{}, err
	}

	rec.Fields[tags.ScalingIntercept] = intercept
	rec.Fields[tags.ScalingSlope] = slope
	if typ, err := tags.String(ds.Elements, tags.ScalingType); err == nil {
		rec.Fields[tags.ScalingType] = typ
	}
	return rec, nil
}

// ParseWindowing extracts the windowing group. Center and width are
// required; the VOI LUT function rides along when present.
func ParseWindowing(ds *dicom.Dataset) (Record, error) {
	rec := NewRecord()

	center, err := tags.Float(ds.Elements, tags.WindowCenter)
	if err != nil {
		return Record{}, err
	}
	width, err := tags.Float(ds.Elements, tags.WindowWidth)
	if err != nil {
		return Record{}, err
	}

	rec.Fields[tags.WindowCenter] = center
	rec.Fields[tags.WindowWidth] = width
	if fn, err := tags.String(ds.Elements, tags.WindowFunction); err == nil {
		rec.Fields[tags.WindowFunction] = fn
	}
	return rec, nil
}

// ParseMisc extracts the optional descriptive group.
func ParseMisc(ds *dicom.Dataset) (Record, error) {
	rec := NewRecord()

	part, err := tags.String(ds.Elements, tags.BodyPart)
	if err != nil {
		return Record{}, err
	}
	rec.Fields[tags.BodyPart] = part
	return rec, nil
}

// ParseAnnotations extracts every well-formed annotation in a dataset.
// Malformed objects are skipped, but a call that finds none at all
// fails: probing with HasAnnotations first is the intended contract.
func ParseAnnotations(ds *dicom.Dataset) ([]Annotation, error) {
	items, err := tags.SequenceItems(ds.Elements, tags.AnnotationSequence)
	if err != nil {
		return nil, err
	}

	var annots []Annotation
	for _, item := range items {
		objs, err := tags.SequenceItems(item, tags.AnnotationObject)
		if err != nil {
			continue
		}
		for _, obj := range objs {
			annot, err := parseAnnotation(obj)
			if err != nil {
				continue
			}
			annots = append(annots, annot)
		}
	}
	if len(annots) == 0 {
		return nil, &tags.MissingTag{Tag: tags.AnnotationObject}
	}
	return annots, nil
}

// parseAnnotation validates and extracts a single annotation object.
func parseAnnotation(obj []*dicom.Element) (Annotation, error) {
	count, err := tags.Int(obj, tags.AnnotationCount)
	if err != nil {
		return nil, err
	}
	dims, err := tags.Int(obj, tags.AnnotationDimensions)
	if err != nil {
		return nil, err
	}
	typ, err := tags.String(obj, tags.AnnotationType)
	if err != nil {
		return nil, err
	}
	units, err := tags.String(obj, tags.AnnotationUnits)
	if err != nil {
		return nil, err
	}
	data, err := tags.Floats(obj, tags.AnnotationData)
	if err != nil {
		return nil, err
	}

	if count != annotationPoints || dims != annotationDimensions ||
		typ != annotationType || units != annotationUnits ||
		len(data) != annotationValues {
		return nil, &tags.MissingTag{Tag: tags.AnnotationData}
	}
	return Annotation(data), nil
}

// ParseReference extracts the SOP class, SOP instance and series
// identifiers of the instance a dataset refers to.
func ParseReference(ds *dicom.Dataset) (class, instance, series string, err error) {
	item, err := tags.ItemAt(ds.Elements, tags.ReferenceSequence, 0)
	if err != nil {
		return "", "", "", err
	}
	obj, err := tags.ItemAt(item, tags.ReferenceObject, 0)
	if err != nil {
		return "", "", "", err
	}

	if class, err = tags.String(obj, tags.ReferenceClass); err != nil {
		return "", "", "", err
	}
	if instance, err = tags.String(obj, tags.ReferenceInstance); err != nil {
		return "", "", "", err
	}
	if series, err = tags.String(item, tags.ReferenceSeries); err != nil {
		return "", "", "", err
	}
	return class, instance, series, nil
}

// ParseDataset extracts everything a single file has to offer. The
// common identity tags are mandatory; every other group folds in only
// when its presence predicate holds. A reference, when present,
// overwrites the identity parsed from the file itself: a fragment that
// only annotates another image belongs to that image's identity.
func ParseDataset(ds *dicom.Dataset, path string) (Record, error) {
	rec, err := ParseCommon(ds)
	if err != nil {
		return Record{}, err
	}

	if HasPixels(ds) {
		px, err := ParsePixels(ds, path)
		if err != nil {
			return Record{}, err
		}
		rec = merge(rec, px)
	}
	if HasMisc(ds) {
		misc, err := ParseMisc(ds)
		if err != nil {
			return Record{}, err
		}
		rec = merge(rec, misc)
	}
	if HasScaling(ds) {
		sc, err := ParseScaling(ds)
		if err != nil {
			return Record{}, err
		}
		rec = merge(rec, sc)
	}
	if HasWindowing(ds) {
		win, err := ParseWindowing(ds)
		if err != nil {
			return Record{}, err
		}
		rec = merge(rec, win)
	}
	if HasAnnotations(ds) {
		annots, err := ParseAnnotations(ds)
		if err != nil {
			return Record{}, err
		}
		rec.Annotations = annots
	}
	if HasReference(ds) {
		class, instance, series, err := ParseReference(ds)
		if err != nil {
			return Record{}, err
		}
		rec.Fields[tags.SOPClass] = class
		rec.Fields[tags.SOPInstance] = instance
		rec.Fields[tags.Series] = series
	}
	return rec, nil
}

// merge copies src's fields into dst. Groups never share tags, so this
// is a plain union.
func merge(dst, src Record) Record {
	for t, v := range src.Fields {
		dst.Fields[t] = v
	}
	return dst
}

// pixelDigest reduces a pixel payload to a stable 64-bit fingerprint.
// Collation parses with pixel processing skipped, so the raw value
// bytes are normally available; decoded frames are hashed through
// their image representation as a fallback.
func pixelDigest(info dicom.PixelDataInfo) uint64 {
	h := fnv.New64a()
	if len(info.UnprocessedValueData) > 0 {
		_, _ = h.Write(info.UnprocessedValueData)
		return h.Sum64()
	}
	for _, f := range info.Frames {
		img, err := f.GetImage()
		if err != nil {
			continue
		}
		b := img.Bounds()
		buf := make([]byte, 8)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				buf[0] = byte(r >> 8)
				buf[1] = byte(r)
				buf[2] = byte(g >> 8)
				buf[3] = byte(g)
				buf[4] = byte(bl >> 8)
				buf[5] = byte(bl)
				buf[6] = byte(x)
				buf[7] = byte(y)
				_, _ = h.Write(buf)
			}
		}
	}
	return h.Sum64()
}
