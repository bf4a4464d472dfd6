package export

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"breakdb/internal/database"
	"breakdb/internal/logging"
	"breakdb/internal/parse"
	"breakdb/internal/testsupport"
)

func TestFormatImageLetterbox(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1000, 800))

	fitted, transform := FormatImage(img, 1000, 800, FormatOptions{
		TargetWidth:     500,
		TargetHeight:    500,
		KeepAspectRatio: true,
		NoUpscale:       true,
	})

	bounds := fitted.Bounds()
	if bounds.Dx() != 500 || bounds.Dy() != 500 {
		t.Errorf("canvas: got %dx%d, want 500x500", bounds.Dx(), bounds.Dy())
	}
	if transform.OriginX != 0 || transform.OriginY != 50 {
		t.Errorf("origin: got (%v, %v), want (0, 50)", transform.OriginX, transform.OriginY)
	}
	if transform.RatioX != 0.5 || transform.RatioY != 0.5 {
		t.Errorf("ratios: got (%v, %v), want (0.5, 0.5)", transform.RatioX, transform.RatioY)
	}

	got := transform.Coordinates(parse.Annotation{200, 200})
	if got[0] != 100 || got[1] != 150 {
		t.Errorf("point: got (%v, %v), want (100, 150)", got[0], got[1])
	}
}

func TestFormatImageIdentity(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 640, 480))

	fitted, transform := FormatImage(img, 640, 480, FormatOptions{})
	if !transform.Identity() {
		t.Errorf("transform should be identity, got %+v", transform)
	}
	if fitted != img {
		t.Error("an untouched image should be returned as is")
	}
}

func TestFormatImageStretch(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))

	fitted, _ := FormatImage(img, 100, 100, FormatOptions{
		TargetWidth:  50,
		TargetHeight: 25,
	})
	bounds := fitted.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 25 {
		t.Errorf("got %dx%d, want 50x25", bounds.Dx(), bounds.Dy())
	}
}

func writeImageFixture(t *testing.T, ds *testsupport.Dataset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dcm")
	if err := ds.WriteFile(path); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func gradient(width, height int) []uint16 {
	px := make([]uint16, width*height)
	for i := range px {
		px[i] = uint16(i)
	}
	return px
}

func TestLoadImage(t *testing.T) {
	path := writeImageFixture(t, testsupport.NewDataset(1).
		WithNativePixels(16, 16, gradient(16, 16)))

	row := database.Entry{FilePath: path, Width: 16, Height: 16}
	img, err := LoadImage(row, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("got %dx%d, want 16x16", bounds.Dx(), bounds.Dy())
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatal("grayscale DICOM should load as a gray image")
	}
	// The gradient spans the full range after normalization.
	if gray.Pix[0] != 0 {
		t.Errorf("first pixel: got %d, want 0", gray.Pix[0])
	}
	if gray.Pix[len(gray.Pix)-1] != 255 {
		t.Errorf("last pixel: got %d, want 255", gray.Pix[len(gray.Pix)-1])
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	row := database.Entry{FilePath: filepath.Join(t.TempDir(), "nope.dcm")}
	if _, err := LoadImage(row, LoadOptions{}); err == nil {
		t.Error("a missing file should fail the load")
	}
}

type recordingExporter struct {
	prepared bool
	finished bool
	items    []Item
	fail     bool
}

func (r *recordingExporter) Name() string { return "recording" }

func (r *recordingExporter) Prepare(string) error {
	r.prepared = true
	return nil
}

func (r *recordingExporter) ExportItem(item Item, _ string) error {
	if r.fail {
		return errors.New("boom")
	}
	r.items = append(r.items, item)
	return nil
}

func (r *recordingExporter) Finish(string, *database.Table) error {
	r.finished = true
	return nil
}

func exportTable(t *testing.T) *database.Table {
	t.Helper()
	path := writeImageFixture(t, testsupport.NewDataset(2).
		WithNativePixels(16, 16, gradient(16, 16)))

	table := &database.Table{}
	table.Append(database.Entry{
		ID:       "1.2.3",
		FilePath: path,
		Width:    16,
		Height:   16,
		Annotations: []parse.Annotation{
			{2, 2, 8, 2, 8, 8, 2, 8, 2, 2},
		},
	})
	return table
}

func TestDatabaseDrivesExporter(t *testing.T) {
	rec := &recordingExporter{}
	opts := Options{Workers: 1, Logger: logging.Discard()}

	err := Database(context.Background(), exportTable(t), rec, t.TempDir(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.prepared || !rec.finished {
		t.Error("prepare and finish hooks should both run")
	}
	if len(rec.items) != 1 {
		t.Fatalf("got %d items, want 1", len(rec.items))
	}

	item := rec.items[0]
	if item.BaseName != "0" {
		t.Errorf("base name: got %q", item.BaseName)
	}
	if item.Width != 16 || item.Height != 16 {
		t.Errorf("dimensions: got %dx%d", item.Width, item.Height)
	}
	if len(item.Annotations) != 1 {
		t.Errorf("got %d annotations", len(item.Annotations))
	}
}

func TestDatabaseWrapsFailures(t *testing.T) {
	rec := &recordingExporter{fail: true}
	opts := Options{Workers: 1, Logger: logging.Discard()}

	err := Database(context.Background(), exportTable(t), rec, t.TempDir(), opts)
	var ferr *EntryFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("got %v, want EntryFormatError", err)
	}
	if ferr.Index != 0 || ferr.Format != "recording" {
		t.Errorf("error context: got %+v", ferr)
	}
}

func TestDatabaseSkipBrokenToleratesFailures(t *testing.T) {
	rec := &recordingExporter{fail: true}
	opts := Options{Workers: 1, SkipBroken: true, Logger: logging.Discard()}

	err := Database(context.Background(), exportTable(t), rec, t.TempDir(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.finished {
		t.Error("a tolerated failure should not stop the run")
	}
}
