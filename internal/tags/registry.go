// Package tags maps the domain concepts of the fracture database onto
// DICOM element addresses. It is the single source of truth for which
// tags the parser reads and the merger folds; other packages must treat
// tags that are absent from this registry as simply not present.
package tags

import (
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Category groups the registered tags by the role they play in a
// collated record.
type Category int

const (
	// Common identifies tags every usable DICOM file must carry.
	Common Category = iota
	// Pixel identifies tags describing the raw image payload.
	Pixel
	// Scaling identifies the linear storage-to-output transform tags.
	Scaling
	// Windowing identifies the visualization window tags.
	Windowing
	// Annotation identifies the graphic polyline annotation tags.
	Annotation
	// Reference identifies tags linking one file to another instance.
	Reference
	// Misc identifies optional descriptive tags.
	Misc
)

// String returns the human-readable name of a Category.
func (c Category) String() string {
	switch c {
	case Common:
		return "Common"
	case Pixel:
		return "Pixel"
	case Scaling:
		return "Scaling"
	case Windowing:
		return "Windowing"
	case Annotation:
		return "Annotation"
	case Reference:
		return "Reference"
	case Misc:
		return "Misc"
	default:
		return "Unknown"
	}
}

// Tag addresses, grouped by category. Reference series intentionally
// shares its address with the common series tag: a reference rewrites
// the identity of the file that carries it.
var (
	// Common tags.
	SOPClass    = tag.SOPClassUID
	SOPInstance = tag.SOPInstanceUID
	Series      = tag.SeriesInstanceUID
	Study       = tag.StudyInstanceUID

	// Pixel tags.
	PixelColumns              = tag.Columns
	PixelRows                 = tag.Rows
	PixelData                 = tag.PixelData
	PhotometricInterpretation = tag.PhotometricInterpretation

	// Scaling tags.
	ScalingIntercept = tag.RescaleIntercept
	ScalingSlope     = tag.RescaleSlope
	ScalingType      = tag.RescaleType

	// Windowing tags.
	WindowCenter   = tag.WindowCenter
	WindowWidth    = tag.WindowWidth
	WindowFunction = tag.VOILUTFunction

	// Annotation tags. An annotation object lives inside a graphic
	// object sequence, itself inside a graphic annotation sequence.
	AnnotationSequence   = tag.GraphicAnnotationSequence
	AnnotationObject     = tag.GraphicObjectSequence
	AnnotationUnits      = tag.GraphicAnnotationUnits
	AnnotationDimensions = tag.GraphicDimensions
	AnnotationCount      = tag.NumberOfGraphicPoints
	AnnotationData       = tag.GraphicData
	AnnotationType       = tag.GraphicType

	// Reference tags.
	ReferenceSequence = tag.ReferencedSeriesSequence
	ReferenceObject   = tag.ReferencedImageSequence
	ReferenceClass    = tag.ReferencedSOPClassUID
	ReferenceInstance = tag.ReferencedSOPInstanceUID
	ReferenceSeries   = tag.SeriesInstanceUID

	// Misc tags.
	BodyPart = tag.BodyPartExamined
)

// Info describes a registered tag.
type Info struct {
	Name     string
	Tag      tag.Tag
	Category Category
}

// registry holds every tag this project knows about, in category order.
var registry = []Info{
	{Name: "SOPClassUID", Tag: SOPClass, Category: Common},
	{Name: "SOPInstanceUID", Tag: SOPInstance, Category: Common},
	{Name: "SeriesInstanceUID", Tag: Series, Category: Common},
	{Name: "StudyInstanceUID", Tag: Study, Category: Common},

	{Name: "Columns", Tag: PixelColumns, Category: Pixel},
	{Name: "Rows", Tag: PixelRows, Category: Pixel},
	{Name: "PixelData", Tag: PixelData, Category: Pixel},
	{Name: "PhotometricInterpretation", Tag: PhotometricInterpretation, Category: Pixel},

	{Name: "RescaleIntercept", Tag: ScalingIntercept, Category: Scaling},
	{Name: "RescaleSlope", Tag: ScalingSlope, Category: Scaling},
	{Name: "RescaleType", Tag: ScalingType, Category: Scaling},

	{Name: "WindowCenter", Tag: WindowCenter, Category: Windowing},
	{Name: "WindowWidth", Tag: WindowWidth, Category: Windowing},
	{Name: "VOILUTFunction", Tag: WindowFunction, Category: Windowing},

	{Name: "GraphicAnnotationSequence", Tag: AnnotationSequence, Category: Annotation},
	{Name: "GraphicObjectSequence", Tag: AnnotationObject, Category: Annotation},
	{Name: "GraphicAnnotationUnits", Tag: AnnotationUnits, Category: Annotation},
	{Name: "GraphicDimensions", Tag: AnnotationDimensions, Category: Annotation},
	{Name: "NumberOfGraphicPoints", Tag: AnnotationCount, Category: Annotation},
	{Name: "GraphicData", Tag: AnnotationData, Category: Annotation},
	{Name: "GraphicType", Tag: AnnotationType, Category: Annotation},

	{Name: "ReferencedSeriesSequence", Tag: ReferenceSequence, Category: Reference},
	{Name: "ReferencedImageSequence", Tag: ReferenceObject, Category: Reference},
	{Name: "ReferencedSOPClassUID", Tag: ReferenceClass, Category: Reference},
	{Name: "ReferencedSOPInstanceUID", Tag: ReferenceInstance, Category: Reference},
	{Name: "SeriesInstanceUID", Tag: ReferenceSeries, Category: Reference},

	{Name: "BodyPartExamined", Tag: BodyPart, Category: Misc},
}

// ByCategory returns the registered tags belonging to the given category.
func ByCategory(c Category) []Info {
	var infos []Info
	for _, info := range registry {
		if info.Category == c {
			infos = append(infos, info)
		}
	}
	return infos
}

// Describe returns registry information for a tag address. When an
// address is registered in more than one category (the series tag),
// the first registration wins.
func Describe(t tag.Tag) (Info, bool) {
	for _, info := range registry {
		if info.Tag == t {
			return info, true
		}
	}
	return Info{}, false
}
