package export

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/suyashkumar/dicom"
	xdraw "golang.org/x/image/draw"

	"breakdb/internal/database"
	"breakdb/internal/geometry"
	"breakdb/internal/tags"
)

// LoadOptions selects which visual transforms are applied when an
// image is read back from its DICOM file.
type LoadOptions struct {
	// IgnoreScaling skips the stored-value to output-value linear
	// transform even when the row carries one.
	IgnoreScaling bool
	// IgnoreWindowing skips the visualization window even when the row
	// carries one.
	IgnoreWindowing bool
}

// LoadImage reads the pixel data of a database row back from its DICOM
// file, applies scaling and windowing per the row's flags, and
// normalizes the intensities for serialization.
func LoadImage(row database.Entry, opts LoadOptions) (image.Image, error) {
	ds, err := dicom.ParseFile(row.FilePath, nil)
	if err != nil {
		return nil, err
	}

	interp, err := tags.String(ds.Elements, tags.PhotometricInterpretation)
	if err != nil {
		return nil, err
	}
	mode, err := geometry.Mode(interp)
	if err != nil {
		return nil, err
	}

	e, ok := tags.Find(ds.Elements, tags.PixelData)
	if !ok {
		return nil, &tags.MissingTag{Tag: tags.PixelData}
	}
	info, ok := e.Value.GetValue().(dicom.PixelDataInfo)
	if !ok || len(info.Frames) == 0 {
		return nil, &tags.MissingTag{Tag: tags.PixelData}
	}
	decoded, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, err
	}

	if mode != geometry.Gray {
		// Color captures carry display-ready values already.
		return decoded, nil
	}

	values := grayValues(decoded)

	if row.Scaling && !opts.IgnoreScaling {
		intercept, ierr := tags.Float(ds.Elements, tags.ScalingIntercept)
		slope, serr := tags.Float(ds.Elements, tags.ScalingSlope)
		if ierr == nil && serr == nil {
			for i := range values {
				values[i] = values[i]*slope + intercept
			}
		}
	}

	if row.Windowing && !opts.IgnoreWindowing {
		center, cerr := tags.Float(ds.Elements, tags.WindowCenter)
		width, werr := tags.Float(ds.Elements, tags.WindowWidth)
		if cerr == nil && werr == nil && width > 0 {
			lo := center - width/2
			hi := center + width/2
			for i := range values {
				if values[i] < lo {
					values[i] = lo
				}
				if values[i] > hi {
					values[i] = hi
				}
			}
		}
	}

	values = geometry.Normalize(values)

	b := decoded.Bounds()
	out := image.NewGray(b)
	for i, v := range values {
		out.Pix[i] = uint8(v)
	}
	return out, nil
}

// grayValues flattens a decoded frame into per-pixel intensities.
func grayValues(img image.Image) []float64 {
	b := img.Bounds()
	values := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			values = append(values, float64(r))
		}
	}
	return values
}

// FormatOptions controls the geometry of an exported image.
type FormatOptions struct {
	TargetWidth     int
	TargetHeight    int
	KeepAspectRatio bool
	NoUpscale       bool
}

// FormatImage fits a loaded image into the target box, letterboxing the
// result when aspect preservation leaves a margin, and returns the
// final image together with the coordinate transform from the original.
func FormatImage(img image.Image, width, height int, opts FormatOptions) (image.Image, geometry.Transform) {
	targetWidth := opts.TargetWidth
	if targetWidth == 0 {
		targetWidth = width
	}
	targetHeight := opts.TargetHeight
	if targetHeight == 0 {
		targetHeight = height
	}

	rw, rh := geometry.ResizeDimensions(width, height,
		targetWidth, targetHeight, opts.KeepAspectRatio, opts.NoUpscale)
	transform := geometry.ResizeTransform(width, height,
		targetWidth, targetHeight, rw, rh)

	if transform.Identity() && rw == width && rh == height {
		return img, transform
	}

	resized := imaging.Resize(img, rw, rh, imaging.Lanczos)
	if rw == targetWidth && rh == targetHeight {
		return resized, transform
	}

	// Center the resized image on a black canvas of the target size.
	canvas := image.NewNRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	origin := image.Pt(int(transform.OriginX), int(transform.OriginY))
	xdraw.Draw(canvas, resized.Bounds().Add(origin), resized, image.Point{}, xdraw.Src)
	return canvas, transform
}
