package geometry

import "fmt"

// UnknownImageFormat reports a photometric interpretation with no
// usable color mode mapping.
type UnknownImageFormat struct {
	Interpretation string
}

func (e *UnknownImageFormat) Error() string {
	return fmt.Sprintf("no color mode for photometric interpretation %q", e.Interpretation)
}

// ColorMode is the pixel layout an exported image is rendered with.
type ColorMode int

const (
	// Gray renders single-sample luminance pixels.
	Gray ColorMode = iota
	// RGB renders three-sample color pixels.
	RGB
	// YCbCr renders luminance/chrominance color pixels.
	YCbCr
)

// Mode maps a DICOM photometric interpretation onto a color mode. Only
// the interpretations an X-ray collation actually meets are supported;
// everything else is an unknown format.
func Mode(interpretation string) (ColorMode, error) {
	switch interpretation {
	case "MONOCHROME1", "MONOCHROME2":
		return Gray, nil
	case "RGB":
		return RGB, nil
	case "YBR_FULL":
		return YCbCr, nil
	default:
		return 0, &UnknownImageFormat{Interpretation: interpretation}
	}
}

// Normalize linearly maps intensities onto the [0, 255] range used for
// image serialization. The minimum shifts to zero first; a constant
// array maps to all zeros rather than dividing by a zero spread.
func Normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)

	lo := out[0]
	for _, v := range out {
		if v < lo {
			lo = v
		}
	}
	if lo != 0 {
		for i := range out {
			out[i] -= lo
		}
	}

	hi := out[0]
	for _, v := range out {
		if v > hi {
			hi = v
		}
	}
	if hi != 255 && hi != 0 {
		for i := range out {
			out[i] = out[i] / hi * 255
		}
	}
	return out
}
