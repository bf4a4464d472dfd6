package tags

import (
	"errors"
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func mustElement(t *testing.T, tg tag.Tag, value any) *dicom.Element {
	t.Helper()
	e, err := dicom.NewElement(tg, value)
	if err != nil {
		t.Fatalf("creating element %s: %v", tg, err)
	}
	return e
}

func TestByCategory(t *testing.T) {
	cases := []struct {
		category Category
		want     int
	}{
		{Common, 4},
		{Pixel, 4},
		{Scaling, 3},
		{Windowing, 3},
		{Annotation, 7},
		{Reference, 5},
		{Misc, 1},
	}
	for _, tc := range cases {
		t.Run(tc.category.String(), func(t *testing.T) {
			infos := ByCategory(tc.category)
			if len(infos) != tc.want {
				t.Errorf("got %d tags, want %d", len(infos), tc.want)
			}
			for _, info := range infos {
				if info.Category != tc.category {
					t.Errorf("%s carries category %s", info.Name, info.Category)
				}
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	info, ok := Describe(BodyPart)
	if !ok {
		t.Fatal("body part tag should be registered")
	}
	if info.Name != "BodyPartExamined" || info.Category != Misc {
		t.Errorf("got %+v", info)
	}

	// The series address is registered twice; the common registration
	// comes first.
	info, ok = Describe(Series)
	if !ok {
		t.Fatal("series tag should be registered")
	}
	if info.Category != Common {
		t.Errorf("series should describe as Common, got %s", info.Category)
	}

	if _, ok := Describe(tag.PatientName); ok {
		t.Error("unregistered tag should not describe")
	}
}

func TestStringAccess(t *testing.T) {
	elems := []*dicom.Element{
		mustElement(t, BodyPart, []string{" ARM "}),
	}

	got, err := String(elems, BodyPart)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ARM" {
		t.Errorf("got %q, want trimmed ARM", got)
	}

	_, err = String(elems, Study)
	var missing *MissingTag
	if !errors.As(err, &missing) {
		t.Errorf("absent tag should report MissingTag, got %v", err)
	}
}

func TestNumericAccess(t *testing.T) {
	elems := []*dicom.Element{
		mustElement(t, PixelColumns, []int{1024}),
		mustElement(t, ScalingSlope, []string{"1.5"}),
		mustElement(t, AnnotationData, []float64{1, 2, 3}),
	}

	if n, err := Int(elems, PixelColumns); err != nil || n != 1024 {
		t.Errorf("Int = %d, %v", n, err)
	}
	if f, err := Float(elems, ScalingSlope); err != nil || f != 1.5 {
		t.Errorf("Float from decimal string = %v, %v", f, err)
	}
	fs, err := Floats(elems, AnnotationData)
	if err != nil || len(fs) != 3 {
		t.Errorf("Floats = %v, %v", fs, err)
	}
	if _, err := Float(elems, WindowCenter); err == nil {
		t.Error("absent tag should fail")
	}
}

func TestSequenceAccess(t *testing.T) {
	item := []*dicom.Element{
		mustElement(t, ReferenceSeries, []string{"1.2.3"}),
	}
	elems := []*dicom.Element{
		mustElement(t, ReferenceSequence, [][]*dicom.Element{item}),
		mustElement(t, BodyPart, []string{"ARM"}),
	}

	if !HasSequence(elems, ReferenceSequence) {
		t.Error("reference sequence should be detected")
	}
	if HasSequence(elems, BodyPart) {
		t.Error("a plain string element is not a sequence")
	}

	items, err := SequenceItems(elems, ReferenceSequence)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || len(items[0]) != 1 {
		t.Errorf("unexpected items %v", items)
	}

	if _, err := ItemAt(elems, ReferenceSequence, 1); err == nil {
		t.Error("out-of-range item should fail")
	}
	var missing *MissingSequence
	if _, err := SequenceItems(elems, AnnotationSequence); !errors.As(err, &missing) {
		t.Errorf("absent sequence should report MissingSequence, got %v", err)
	}
}
