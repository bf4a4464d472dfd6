package main

import (
	"strings"
	"testing"

	"breakdb/internal/testsupport"
)

func TestTagPrinter(t *testing.T) {
	ds := testsupport.NewDataset(1).
		WithBodyPart("ARM").
		WithAnnotations(testsupport.Polyline(1, 2, 3, 4, 5, 6, 7, 8, 1, 2)).
		Build()

	p := tagPrinter{useColor: false}
	out := p.dataset(ds.Elements, 0)

	if !strings.Contains(out, "BodyPartExamined") {
		t.Error("output should carry tag descriptions")
	}
	if !strings.Contains(out, "ARM") {
		t.Error("output should carry tag values")
	}
	if !strings.Contains(out, "1 item(s)") {
		t.Error("sequences should print their item count")
	}
	if !strings.Contains(out, "   ") {
		t.Error("nested elements should be indented")
	}
}

func TestTagPrinterHideFlags(t *testing.T) {
	ds := testsupport.NewDataset(2).WithBodyPart("LEG").Build()

	p := tagPrinter{hideDesc: true, hideValue: true, useColor: false}
	out := p.dataset(ds.Elements, 0)
	if strings.Contains(out, "BodyPartExamined") {
		t.Error("descriptions should be hidden")
	}
	if strings.Contains(out, "LEG") {
		t.Error("values should be hidden")
	}
	if !strings.Contains(out, "(0018,0015)") {
		t.Error("tag codes should still print")
	}
}

func TestTagPrinterTopLevel(t *testing.T) {
	ds := testsupport.NewDataset(3).
		WithAnnotations(testsupport.Polyline(1, 2, 3, 4, 5, 6, 7, 8, 1, 2)).
		Build()

	p := tagPrinter{topLevel: true, useColor: false}
	out := p.dataset(ds.Elements, 0)
	if strings.Contains(out, "GraphicData") {
		t.Error("nested sequence contents should be suppressed")
	}
}

func TestExporterFor(t *testing.T) {
	if _, err := exporterFor("voc"); err != nil {
		t.Errorf("voc: %v", err)
	}
	if _, err := exporterFor("yolo"); err != nil {
		t.Errorf("yolo: %v", err)
	}
	if _, err := exporterFor(""); err != nil {
		t.Errorf("default: %v", err)
	}
	if _, err := exporterFor("coco"); err == nil {
		t.Error("unknown format should fail")
	}
}
