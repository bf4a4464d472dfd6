package collate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"breakdb/internal/logging"
	"breakdb/internal/merge"
	"breakdb/internal/testsupport"
)

func writeFixture(t *testing.T, ds *testsupport.Dataset, path string) {
	t.Helper()
	if err := ds.WriteFile(path); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

func quietOptions() Options {
	return Options{Workers: 2, Logger: logging.Discard()}
}

func grayscale(width, height int) []uint16 {
	px := make([]uint16, width*height)
	for i := range px {
		px[i] = uint16(i % 4096)
	}
	return px
}

func TestCollateMergesAnnotationFragment(t *testing.T) {
	dir := t.TempDir()

	capture := testsupport.NewDataset(1).
		WithNativePixels(64, 48, grayscale(64, 48)).
		WithScaling(0, 1, "US")
	fragment := testsupport.NewDataset(2).
		WithAnnotations(testsupport.Polyline(5, 5, 20, 5, 20, 20, 5, 20, 5, 5)).
		WithReferenceTo(capture)

	writeFixture(t, capture, filepath.Join(dir, "capture.dcm"))
	writeFixture(t, fragment, filepath.Join(dir, "fragment.dcm"))

	table, err := Collate([]string{dir}, quietOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}

	entry := table.Entries[0]
	if !entry.Classification {
		t.Error("annotated image should classify positive")
	}
	if !entry.Scaling {
		t.Error("scaling flag should be set")
	}
	if entry.Windowing {
		t.Error("windowing flag should not be set")
	}
	if len(entry.Annotations) != 1 {
		t.Errorf("got %d annotations, want 1", len(entry.Annotations))
	}
	if entry.Width != 64 || entry.Height != 48 {
		t.Errorf("dimensions: got %dx%d", entry.Width, entry.Height)
	}
	if filepath.Base(entry.FilePath) != "capture.dcm" {
		t.Errorf("file path should point at the pixel-bearing file, got %s", entry.FilePath)
	}
}

func TestCollateSeparateIdentitiesStaySeparate(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, testsupport.NewDataset(3).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "a.dcm"))
	writeFixture(t, testsupport.NewDataset(4).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "b.dcm"))

	table, err := Collate([]string{dir}, quietOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("got %d rows, want 2", table.Len())
	}
}

func TestCollatePatternNarrowsDiscovery(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"arm", "leg"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	writeFixture(t, testsupport.NewDataset(14).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "arm", "a.dcm"))
	writeFixture(t, testsupport.NewDataset(15).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "leg", "b.dcm"))

	opts := quietOptions()
	opts.Pattern = "arm/**"
	table, err := Collate([]string{dir}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}
	if filepath.Base(table.Entries[0].FilePath) != "a.dcm" {
		t.Errorf("pattern should admit only the arm capture, got %s",
			table.Entries[0].FilePath)
	}
}

func TestCollateBrokenFileAbortsByDefault(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, testsupport.NewDataset(5).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "good.dcm"))
	if err := os.WriteFile(filepath.Join(dir, "bad.dcm"), []byte("not a dicom"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Collate([]string{dir}, quietOptions()); err == nil {
		t.Error("a broken file should abort the run")
	}
}

func TestCollateSkipBrokenDropsFile(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, testsupport.NewDataset(6).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "good.dcm"))
	if err := os.WriteFile(filepath.Join(dir, "bad.dcm"), []byte("not a dicom"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := quietOptions()
	opts.SkipBroken = true
	table, err := Collate([]string{dir}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("got %d rows, want 1", table.Len())
	}
}

func TestCollateConflictingBodyPart(t *testing.T) {
	dir := t.TempDir()

	capture := testsupport.NewDataset(9).
		WithNativePixels(32, 32, grayscale(32, 32)).
		WithBodyPart("ARM")
	rival := testsupport.NewDataset(9).
		WithBodyPart("LEG")

	// Prefixes fix the discovery order, so "ARM" is first seen.
	writeFixture(t, capture, filepath.Join(dir, "1-capture.dcm"))
	writeFixture(t, rival, filepath.Join(dir, "2-rival.dcm"))

	_, err := Collate([]string{dir}, quietOptions())
	var merr *merge.MergingError
	if !errors.As(err, &merr) {
		t.Fatalf("conflicting body parts should abort with a merging error, got %v", err)
	}

	opts := quietOptions()
	opts.SkipBroken = true
	table, err := Collate([]string{dir}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}
	if table.Entries[0].BodyPart != "ARM" {
		t.Errorf("first-seen body part should win, got %q", table.Entries[0].BodyPart)
	}
}

func TestCollateSkipBrokenDropsAnnotationOnlyIdentity(t *testing.T) {
	dir := t.TempDir()

	// An annotation with no pixel-bearing file anywhere cannot become
	// a row.
	writeFixture(t, testsupport.NewDataset(7).
		WithAnnotations(testsupport.Polyline(1, 1, 2, 1, 2, 2, 1, 2, 1, 1)),
		filepath.Join(dir, "orphan.dcm"))

	if _, err := Collate([]string{dir}, quietOptions()); err == nil {
		t.Error("an orphan annotation should abort a strict run")
	}

	opts := quietOptions()
	opts.SkipBroken = true
	table, err := Collate([]string{dir}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("got %d rows, want 0", table.Len())
	}
}

func TestCreateWritesDatabase(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, testsupport.NewDataset(8).
		WithNativePixels(32, 32, grayscale(32, 32)), filepath.Join(dir, "a.dcm"))

	output := filepath.Join(t.TempDir(), "db.csv")
	if err := Create([]string{dir}, output, quietOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("database file should exist: %v", err)
	}
}
