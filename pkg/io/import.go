package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/skyfold/skyfold/pkg/pack"
)

// ReadJSON decodes a JSON layout from r.
//
// The input must be an object with "sheet_width", "height" and a
// "placements" array, as produced by [WriteJSON]. ReadJSON validates the
// decoded layout: the sheet width must be positive and finite, and every
// placement needs a name and at least three polygon vertices. Errors are
// wrapped with context describing which placement caused the problem.
//
// The returned layout is independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pack.Layout, error) {
	var l pack.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ImportJSON reads a JSON file at path and returns the decoded layout.
// It returns the same validation errors as [ReadJSON]; open and decode
// failures are wrapped with the file path for context.
func ImportJSON(path string) (*pack.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	l, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return l, nil
}

func validate(l *pack.Layout) error {
	if !(l.SheetWidth > 0) || math.IsInf(l.SheetWidth, 0) {
		return fmt.Errorf("sheet_width must be positive, got %v", l.SheetWidth)
	}
	for i, p := range l.Placements {
		if p.Name == "" {
			return fmt.Errorf("placement %d: missing name", i)
		}
		if len(p.Poly) < 3 {
			return fmt.Errorf("placement %d (%s): polygon has %d vertices, need at least 3", i, p.Name, len(p.Poly))
		}
	}
	return nil
}
