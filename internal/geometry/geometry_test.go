package geometry

import (
	"errors"
	"math"
	"testing"

	"breakdb/internal/parse"
)

func TestResizeRatio(t *testing.T) {
	cases := []struct {
		name      string
		w, h      int
		tw, th    int
		noUpscale bool
		want      float64
	}{
		{"downscale", 1000, 800, 500, 500, false, 0.5},
		{"downscale bound by height", 1000, 800, 900, 400, false, 0.5},
		{"upscale allowed", 100, 100, 300, 200, false, 2},
		{"upscale forbidden", 100, 100, 300, 200, true, 1},
		{"identity", 640, 480, 640, 480, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResizeRatio(tc.w, tc.h, tc.tw, tc.th, tc.noUpscale)
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResizeDimensions(t *testing.T) {
	cases := []struct {
		name       string
		w, h       int
		tw, th     int
		keepAspect bool
		noUpscale  bool
		wantW      int
		wantH      int
	}{
		{"stretch to target", 1000, 800, 500, 500, false, false, 500, 500},
		{"stretch capped at original", 100, 100, 300, 200, false, true, 100, 100},
		{"aspect downscale", 1000, 800, 500, 500, true, false, 500, 400},
		{"aspect upscale", 100, 100, 300, 200, true, false, 200, 200},
		{"aspect upscale forbidden", 100, 100, 300, 200, true, true, 100, 100},
		{"aspect floors", 4, 8, 3, 8, true, false, 3, 6},
		{"zero targets default to original", 640, 480, 0, 0, true, false, 640, 480},
		{"zero height target", 1000, 800, 500, 0, true, false, 500, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := ResizeDimensions(tc.w, tc.h, tc.tw, tc.th, tc.keepAspect, tc.noUpscale)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestResizeTransform(t *testing.T) {
	t.Run("identity when nothing changes", func(t *testing.T) {
		tr := ResizeTransform(640, 480, 640, 480, 640, 480)
		if !tr.Identity() {
			t.Errorf("got %+v, want identity", tr)
		}
	})
	t.Run("centers the letterbox", func(t *testing.T) {
		tr := ResizeTransform(1000, 800, 500, 500, 500, 400)
		if tr.OriginX != 0 || tr.OriginY != 50 {
			t.Errorf("origin: got (%v, %v), want (0, 50)", tr.OriginX, tr.OriginY)
		}
		if tr.RatioX != 0.5 || tr.RatioY != 0.5 {
			t.Errorf("ratios: got (%v, %v), want (0.5, 0.5)", tr.RatioX, tr.RatioY)
		}
	})
	t.Run("zero origin when resize fills target", func(t *testing.T) {
		tr := ResizeTransform(1000, 800, 250, 200, 250, 200)
		if tr.OriginX != 0 || tr.OriginY != 0 {
			t.Errorf("origin: got (%v, %v), want (0, 0)", tr.OriginX, tr.OriginY)
		}
	})
}

func TestTransformCoordinates(t *testing.T) {
	t.Run("letterboxed downscale", func(t *testing.T) {
		tr := ResizeTransform(1000, 800, 500, 500, 500, 400)
		got := tr.Coordinates(parse.Annotation{200, 200})
		if got[0] != 100 || got[1] != 150 {
			t.Errorf("got (%v, %v), want (100, 150)", got[0], got[1])
		}
	})
	t.Run("identity is bit exact", func(t *testing.T) {
		tr := ResizeTransform(777, 555, 777, 555, 777, 555)
		in := parse.Annotation{0.1, 0.2, 1e17, 3.0000000000000004}
		got := tr.Coordinates(in)
		for i := range in {
			if math.Float64bits(got[i]) != math.Float64bits(in[i]) {
				t.Errorf("value %d: got %v, want the input bits unchanged", i, got[i])
			}
		}
	})
	t.Run("does not mutate the input", func(t *testing.T) {
		tr := ResizeTransform(100, 100, 50, 50, 50, 50)
		in := parse.Annotation{10, 20}
		_ = tr.Coordinates(in)
		if in[0] != 10 || in[1] != 20 {
			t.Error("input annotation was mutated")
		}
	})
}

func TestTransformAnnotations(t *testing.T) {
	tr := ResizeTransform(1000, 800, 500, 500, 500, 400)
	annots := []parse.Annotation{
		{200, 200, 400, 200, 400, 400, 200, 400, 200, 200},
		{0, 0, 1000, 800},
	}
	got := tr.Annotations(annots)
	if len(got) != 2 {
		t.Fatalf("got %d annotations", len(got))
	}
	if got[0][0] != 100 || got[0][1] != 150 {
		t.Errorf("first point: got (%v, %v), want (100, 150)", got[0][0], got[0][1])
	}
	if got[1][2] != 500 || got[1][3] != 250 {
		t.Errorf("far corner: got (%v, %v), want (500, 250)", got[1][2], got[1][3])
	}
	if tr.Annotations(nil) != nil {
		t.Error("no annotations in should give no annotations out")
	}
}

func TestMode(t *testing.T) {
	cases := []struct {
		interp string
		want   ColorMode
	}{
		{"MONOCHROME1", Gray},
		{"MONOCHROME2", Gray},
		{"RGB", RGB},
		{"YBR_FULL", YCbCr},
	}
	for _, tc := range cases {
		got, err := Mode(tc.interp)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.interp, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.interp, got, tc.want)
		}
	}

	for _, interp := range []string{
		"ARGB", "CMYK", "HSV", "PALETTE COLOR",
		"YBR_FULL_422", "YBR_PARTIAL_422", "YBR_PARTIAL_420", "",
	} {
		_, err := Mode(interp)
		var unknown *UnknownImageFormat
		if !errors.As(err, &unknown) {
			t.Errorf("%q: got %v, want UnknownImageFormat", interp, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"shifts and scales", []float64{100, 200, 300}, []float64{0, 127.5, 255}},
		{"already normalized", []float64{0, 255}, []float64{0, 255}},
		{"constant maps to zeros", []float64{42, 42, 42}, []float64{0, 0, 0}},
		{"all zero stays zero", []float64{0, 0}, []float64{0, 0}},
		{"negative minimum", []float64{-10, 0, 10}, []float64{0, 127.5, 255}},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d values, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Errorf("value %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
