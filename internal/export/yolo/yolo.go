// Package yolo exports a collated database as a YOLOv3 custom dataset:
// JPEG images under images/, one label file per image under labels/,
// and a classes.names listing.
//
// There is no standard YOLOv3 data format; the layout written here is
// the one expected by the PyTorch-YOLOv3 custom dataset loader.
package yolo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"breakdb/internal/database"
	"breakdb/internal/export"
)

// ClassNames are the labels of the classification column, indexed by
// class number.
var ClassNames = []string{"unbroken", "fractured"}

// Exporter writes YOLOv3 custom datasets.
type Exporter struct{}

// New returns a YOLO exporter.
func New() *Exporter { return &Exporter{} }

// Name identifies the format.
func (e *Exporter) Name() string { return "YOLO" }

// Prepare creates the YOLO directory layout under baseDir.
func (e *Exporter) Prepare(baseDir string) error {
	for _, dir := range []string{
		baseDir,
		filepath.Join(baseDir, "images"),
		filepath.Join(baseDir, "labels"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ExportItem writes one image and its label file.
func (e *Exporter) ExportItem(item export.Item, baseDir string) error {
	imagePath := filepath.Join(baseDir, "images", item.BaseName+".jpg")
	labelPath := filepath.Join(baseDir, "labels", item.BaseName+".txt")

	if err := imaging.Save(item.Image, imagePath); err != nil {
		return err
	}

	class := 0
	if item.Row.Classification {
		class = 1
	}
	lines := annotationLines(class, item.Annotations, item.Width, item.Height)
	return os.WriteFile(labelPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// Finish writes the class name listing.
func (e *Exporter) Finish(baseDir string, _ *database.Table) error {
	return os.WriteFile(filepath.Join(baseDir, "classes.names"),
		[]byte(strings.Join(ClassNames, "\n")+"\n"), 0o644)
}

// annotationLines renders one label line per annotation. An image with
// no annotations still gets a single empty box so every image has a
// label file.
func annotationLines(class int, annots []export.Annotation, width, height int) []string {
	if len(annots) == 0 {
		return []string{"0 0.0 0.0 0.0 0.0"}
	}
	lines := make([]string, len(annots))
	for i, coords := range annots {
		cx, cy, w, h := boundingBox(coords, width, height)
		lines[i] = fmt.Sprintf("%d %g %g %g %g", class, cx, cy, w, h)
	}
	return lines
}

// boundingBox reduces a polyline to a YOLO box: center and extent,
// both normalized to the exported image's dimensions.
func boundingBox(coords export.Annotation, width, height int) (cx, cy, w, h float64) {
	xMin, yMin := coords[0], coords[1]
	xMax, yMax := coords[0], coords[1]
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}

	fw, fh := float64(width), float64(height)
	return (xMax + xMin) / (2 * fw),
		(yMax + yMin) / (2 * fh),
		(xMax - xMin) / fw,
		(yMax - yMin) / fh
}
