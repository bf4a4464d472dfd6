package geometry

import "breakdb/internal/parse"

// Transform carries annotation coordinates from an original image into
// its letterboxed, resized form: each coordinate is scaled by the
// per-axis ratio and shifted by the paste origin.
type Transform struct {
	OriginX float64
	OriginY float64
	RatioX  float64
	RatioY  float64
}

// Identity reports whether the transform leaves coordinates untouched.
func (t Transform) Identity() bool {
	return t.OriginX == 0 && t.OriginY == 0 && t.RatioX == 1 && t.RatioY == 1
}

// Coordinates applies the transform to a flat x,y coordinate sequence.
// An identity transform returns the input values bit for bit, so a
// round trip through an unresized export never perturbs annotations.
func (t Transform) Coordinates(coords parse.Annotation) parse.Annotation {
	out := coords.Clone()
	if t.Identity() {
		return out
	}
	for i := 0; i+1 < len(out); i += 2 {
		out[i] = t.OriginX + out[i]*t.RatioX
		out[i+1] = t.OriginY + out[i+1]*t.RatioY
	}
	return out
}

// Annotations applies the transform to every annotation of an entry.
func (t Transform) Annotations(annots []parse.Annotation) []parse.Annotation {
	if len(annots) == 0 {
		return nil
	}
	out := make([]parse.Annotation, len(annots))
	for i, a := range annots {
		out[i] = t.Coordinates(a)
	}
	return out
}
