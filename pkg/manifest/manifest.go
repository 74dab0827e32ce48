// Package manifest loads part manifests: TOML files describing the sheet and
// the polygonal parts to nest onto it.
//
// A manifest looks like:
//
//	[sheet]
//	width = 200.0
//	step = 1.0
//	spacing = 2.0
//
//	[[part]]
//	name = "bracket"
//	count = 2
//	points = [[0, 0], [40, 0], [40, 30], [0, 30]]
package manifest

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/skyfold/skyfold/pkg/errors"
	"github.com/skyfold/skyfold/pkg/geom"
)

// Sheet describes the stock the parts are nested onto.
type Sheet struct {
	// Width of the sheet along the packing axis.
	Width float64 `toml:"width"`
	// Step is the horizontal scan resolution when searching placements.
	Step float64 `toml:"step"`
	// Spacing is the minimum vertical gap kept between parts.
	Spacing float64 `toml:"spacing"`
}

// Part is one polygonal part with a repetition count.
type Part struct {
	Name   string      `toml:"name"`
	Count  int         `toml:"count"`
	Points [][]float64 `toml:"points"`
}

// Manifest is a parsed part manifest.
type Manifest struct {
	Sheet Sheet  `toml:"sheet"`
	Parts []Part `toml:"part"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks sheet geometry and every part definition.
func (m *Manifest) Validate() error {
	if m.Sheet.Width <= 0 || math.IsNaN(m.Sheet.Width) || math.IsInf(m.Sheet.Width, 0) {
		return errors.New(errors.ErrCodeInvalidSheet, "sheet width must be positive, got %v", m.Sheet.Width)
	}
	if m.Sheet.Step < 0 || m.Sheet.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidSheet, "sheet step and spacing cannot be negative")
	}
	if len(m.Parts) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest defines no parts")
	}

	for i, p := range m.Parts {
		if err := errors.ValidatePartName(p.Name); err != nil {
			return err
		}
		if p.Count < 0 {
			return errors.New(errors.ErrCodeInvalidManifest, "part %q has negative count %d", p.Name, p.Count)
		}
		poly, err := p.Polygon()
		if err != nil {
			return err
		}
		if err := poly.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "part %q (entry %d)", p.Name, i)
		}
	}
	return nil
}

// Polygon converts the part's point pairs into a geom.Polygon.
func (p Part) Polygon() (geom.Polygon, error) {
	poly := make(geom.Polygon, len(p.Points))
	for i, pt := range p.Points {
		if len(pt) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidManifest,
				"part %q point %d has %d coordinates, want 2", p.Name, i, len(pt))
		}
		poly[i] = geom.Point{X: pt[0], Y: pt[1]}
	}
	return poly, nil
}

// Quantity returns the number of copies to place; a zero count means one.
func (p Part) Quantity() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}
