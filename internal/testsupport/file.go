package testsupport

import (
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"

	"breakdb/internal/tags"
)

// WithNativePixels appends a pixel group carrying a decoded 16-bit
// grayscale frame plus the image attributes a well-formed file needs.
// Fixtures written to disk use this form so readers can decode them;
// in-memory fixtures use WithPixels.
func (d *Dataset) WithNativePixels(width, height int, pixels []uint16) *Dataset {
	nativeFrame := frame.NewNativeFrame[uint16](16, height, width, width*height, 1)
	copy(nativeFrame.RawData, pixels)

	d.elements = append(d.elements,
		mustNewElement(tags.PixelColumns, []int{width}),
		mustNewElement(tags.PixelRows, []int{height}),
		mustNewElement(tag.BitsAllocated, []int{16}),
		mustNewElement(tag.BitsStored, []int{16}),
		mustNewElement(tag.HighBit, []int{15}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tags.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   nativeFrame,
				},
			},
		}),
	)
	return d
}

// WriteFile serializes the dataset as an explicit little endian DICOM
// file at the given path.
func (d *Dataset) WriteFile(path string) error {
	elements := make([]*dicom.Element, 0, len(d.elements)+1)
	elements = append(elements,
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}))
	elements = append(elements, d.elements...)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := dicom.Write(f, dicom.Dataset{Elements: elements}); err != nil {
		return err
	}
	return f.Close()
}
