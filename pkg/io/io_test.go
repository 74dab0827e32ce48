package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skyfold/skyfold/pkg/geom"
	"github.com/skyfold/skyfold/pkg/pack"
)

func sampleLayout() *pack.Layout {
	poly := geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	return &pack.Layout{
		SheetWidth: 100,
		Height:     4,
		Placements: []pack.Placement{
			{Name: "square", DX: 0, DY: 0, Poly: poly},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleLayout(), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.SheetWidth != 100 {
		t.Errorf("SheetWidth = %v, want 100", got.SheetWidth)
	}
	if got.Height != 4 {
		t.Errorf("Height = %v, want 4", got.Height)
	}
	if len(got.Placements) != 1 {
		t.Fatalf("got %d placements, want 1", len(got.Placements))
	}
	p := got.Placements[0]
	if p.Name != "square" {
		t.Errorf("name = %q, want %q", p.Name, "square")
	}
	if len(p.Poly) != 4 {
		t.Errorf("got %d vertices, want 4", len(p.Poly))
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportJSON(sampleLayout(), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.SheetWidth != 100 || len(got.Placements) != 1 {
		t.Errorf("unexpected layout: %+v", got)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"malformed", `{`, "decode"},
		{"zero width", `{"sheet_width": 0, "height": 0, "placements": []}`, "sheet_width"},
		{"unnamed placement", `{"sheet_width": 10, "height": 1, "placements": [{"dx": 0, "dy": 0, "poly": [{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1}]}]}`, "missing name"},
		{"degenerate polygon", `{"sheet_width": 10, "height": 1, "placements": [{"name": "p", "poly": [{"x":0,"y":0}]}]}`, "vertices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
