// Package voc exports a collated database as a Pascal VOC dataset:
// JPEG images with per-image XML annotation files in the standard
// directory layout.
package voc

import (
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"breakdb/internal/database"
	"breakdb/internal/export"
)

// Exporter writes Pascal VOC datasets.
type Exporter struct{}

// New returns a Pascal VOC exporter.
func New() *Exporter { return &Exporter{} }

// Name identifies the format.
func (e *Exporter) Name() string { return "Pascal VOC" }

// Prepare creates the VOC directory layout under baseDir.
func (e *Exporter) Prepare(baseDir string) error {
	for _, dir := range []string{
		baseDir,
		filepath.Join(baseDir, "Annotations"),
		filepath.Join(baseDir, "JPEGImages"),
		filepath.Join(baseDir, "ImageSets"),
		filepath.Join(baseDir, "ImageSets", "Main"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ExportItem writes one image and its XML annotation.
func (e *Exporter) ExportItem(item export.Item, baseDir string) error {
	imagePath := filepath.Join(baseDir, "JPEGImages", item.BaseName+".jpg")
	annotationPath := filepath.Join(baseDir, "Annotations", item.BaseName+".xml")

	if err := imaging.Save(item.Image, imagePath); err != nil {
		return err
	}

	doc := annotation{
		Folder:   "JPEGImages",
		Filename: filepath.Base(imagePath),
		Path:     imagePath,
		Source:   source{Database: "Unknown"},
		Size:     size{Width: item.Width, Height: item.Height, Depth: depth(item)},
	}
	for i, coords := range item.Annotations {
		doc.Objects = append(doc.Objects, object{
			Name:      item.BaseName + "-" + strconv.Itoa(i+1),
			Pose:      "Unspecified",
			Truncated: 0,
			Difficult: 0,
			Box:       boundingBox(coords),
		})
	}

	f, err := os.Create(annotationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return f.Close()
}

// Finish writes the Main image set listing every exported entry with
// its classification.
func (e *Exporter) Finish(baseDir string, table *database.Table) error {
	path := filepath.Join(baseDir, "ImageSets", "Main", "default.txt")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pad := len(strconv.Itoa(table.Len()))
	for i, row := range table.Entries {
		flag := "-1"
		if row.Classification {
			flag = "1"
		}
		line := fmt.Sprintf("%0*d %s\n", pad, i, flag)
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return f.Close()
}

type annotation struct {
	XMLName   xml.Name `xml:"annotation"`
	Folder    string   `xml:"folder"`
	Filename  string   `xml:"filename"`
	Path      string   `xml:"path"`
	Source    source   `xml:"source"`
	Size      size     `xml:"size"`
	Segmented int      `xml:"segmented"`
	Objects   []object `xml:"object"`
}

type source struct {
	Database string `xml:"database"`
}

type size struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

type object struct {
	Name      string `xml:"name"`
	Pose      string `xml:"pose"`
	Truncated int    `xml:"truncated"`
	Difficult int    `xml:"difficult"`
	Box       box    `xml:"bndbox"`
}

type box struct {
	XMin float64 `xml:"xmin"`
	YMin float64 `xml:"ymin"`
	XMax float64 `xml:"xmax"`
	YMax float64 `xml:"ymax"`
}

// boundingBox reduces a polyline to its axis-aligned bounds.
func boundingBox(coords export.Annotation) box {
	b := box{XMin: coords[0], YMin: coords[1], XMax: coords[0], YMax: coords[1]}
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if x < b.XMin {
			b.XMin = x
		}
		if x > b.XMax {
			b.XMax = x
		}
		if y < b.YMin {
			b.YMin = y
		}
		if y > b.YMax {
			b.YMax = y
		}
	}
	return b
}

// depth reports the channel count of the exported image. Grayscale
// exports carry a single channel; everything else three.
func depth(item export.Item) int {
	if _, ok := item.Image.(*image.Gray); ok {
		return 1
	}
	return 3
}
