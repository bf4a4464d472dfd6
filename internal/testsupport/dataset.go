// Package testsupport builds in-memory DICOM datasets for tests. The
// builders produce the same shapes the collation pipeline meets in the
// wild: plain captures, annotation-only fragments, references, and
// deliberately malformed variants.
package testsupport

import (
	"fmt"
	"strconv"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"breakdb/internal/tags"
)

func mustNewElement(t tag.Tag, value any) *dicom.Element {
	e, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("creating element %s: %v", t, err))
	}
	return e
}

// Dataset accumulates elements for a synthetic DICOM dataset.
type Dataset struct {
	elements []*dicom.Element
}

// NewDataset starts a dataset carrying the four identity UIDs derived
// from a short seed, so related fixtures can share an identity by
// sharing the seed.
func NewDataset(seed int) *Dataset {
	s := strconv.Itoa(seed)
	d := &Dataset{}
	d.elements = append(d.elements,
		mustNewElement(tags.SOPClass, []string{"1.2.840.10008.5.1.4.1.1.7." + s}),
		mustNewElement(tags.SOPInstance, []string{"1.2.3." + s}),
		mustNewElement(tags.Series, []string{"1.2.3." + s + ".1"}),
		mustNewElement(tags.Study, []string{"1.2.3." + s + ".2"}),
	)
	return d
}

// WithElement appends an arbitrary element.
func (d *Dataset) WithElement(t tag.Tag, value any) *Dataset {
	d.elements = append(d.elements, mustNewElement(t, value))
	return d
}

// WithPixels appends a pixel group whose payload is carried raw, the
// way the collation parser sees it with pixel processing skipped.
func (d *Dataset) WithPixels(width, height int, data []byte) *Dataset {
	d.elements = append(d.elements,
		mustNewElement(tags.PixelColumns, []int{width}),
		mustNewElement(tags.PixelRows, []int{height}),
		mustNewElement(tags.PixelData, dicom.PixelDataInfo{
			IntentionallyUnprocessed: true,
			UnprocessedValueData:     data,
		}),
	)
	return d
}

// WithScaling appends the linear scaling group.
func (d *Dataset) WithScaling(intercept, slope float64, typ string) *Dataset {
	d.elements = append(d.elements,
		mustNewElement(tags.ScalingIntercept, []string{formatDecimal(intercept)}),
		mustNewElement(tags.ScalingSlope, []string{formatDecimal(slope)}),
	)
	if typ != "" {
		d.elements = append(d.elements, mustNewElement(tags.ScalingType, []string{typ}))
	}
	return d
}

// WithWindowing appends the windowing group.
func (d *Dataset) WithWindowing(center, width float64, function string) *Dataset {
	d.elements = append(d.elements,
		mustNewElement(tags.WindowCenter, []string{formatDecimal(center)}),
		mustNewElement(tags.WindowWidth, []string{formatDecimal(width)}),
	)
	if function != "" {
		d.elements = append(d.elements, mustNewElement(tags.WindowFunction, []string{function}))
	}
	return d
}

// WithBodyPart appends the examined body part.
func (d *Dataset) WithBodyPart(part string) *Dataset {
	d.elements = append(d.elements, mustNewElement(tags.BodyPart, []string{part}))
	return d
}

// AnnotationObject describes one graphic object for fixture building.
// The zero-value counts are replaced by the well-formed 5-point,
// 2-dimension shape; tests exercising malformed annotations set the
// fields explicitly.
type AnnotationObject struct {
	Points     int
	Dimensions int
	Type       string
	Units      string
	Data       []float64
}

// Polyline returns a well-formed 5-point annotation closing on its
// first vertex.
func Polyline(coords ...float64) AnnotationObject {
	return AnnotationObject{
		Points:     5,
		Dimensions: 2,
		Type:       "POLYLINE",
		Units:      "PIXEL",
		Data:       coords,
	}
}

// WithAnnotations appends a graphic annotation sequence carrying the
// given objects inside a single annotation item.
func (d *Dataset) WithAnnotations(objs ...AnnotationObject) *Dataset {
	objItems := make([][]*dicom.Element, len(objs))
	for i, obj := range objs {
		objItems[i] = []*dicom.Element{
			mustNewElement(tags.AnnotationUnits, []string{obj.Units}),
			mustNewElement(tags.AnnotationDimensions, []int{obj.Dimensions}),
			mustNewElement(tags.AnnotationCount, []int{obj.Points}),
			mustNewElement(tags.AnnotationData, obj.Data),
			mustNewElement(tags.AnnotationType, []string{obj.Type}),
		}
	}
	item := []*dicom.Element{
		mustNewElement(tags.AnnotationObject, objItems),
	}
	d.elements = append(d.elements,
		mustNewElement(tags.AnnotationSequence, [][]*dicom.Element{item}))
	return d
}

// WithReference appends a referenced series sequence pointing at
// another instance.
func (d *Dataset) WithReference(class, instance, series string) *Dataset {
	obj := []*dicom.Element{
		mustNewElement(tags.ReferenceClass, []string{class}),
		mustNewElement(tags.ReferenceInstance, []string{instance}),
	}
	item := []*dicom.Element{
		mustNewElement(tags.ReferenceObject, [][]*dicom.Element{obj}),
		mustNewElement(tags.ReferenceSeries, []string{series}),
	}
	d.elements = append(d.elements,
		mustNewElement(tags.ReferenceSequence, [][]*dicom.Element{item}))
	return d
}

// WithReferenceTo points this dataset at the identity of another
// fixture dataset, copying that fixture's class, instance and series.
func (d *Dataset) WithReferenceTo(target *Dataset) *Dataset {
	return d.WithReference(
		target.StringValue(tags.SOPClass),
		target.StringValue(tags.SOPInstance),
		target.StringValue(tags.Series),
	)
}

// StringValue returns the first string value of a tag in the fixture,
// or "" when absent.
func (d *Dataset) StringValue(t tag.Tag) string {
	v, err := tags.String(d.elements, t)
	if err != nil {
		return ""
	}
	return v
}

// Build returns the accumulated dataset.
func (d *Dataset) Build() *dicom.Dataset {
	return &dicom.Dataset{Elements: d.elements}
}

func formatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
