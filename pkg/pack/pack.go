// Package pack places polygonal parts onto a sheet using skyline
// silhouettes.
//
// The strategy is bottom-up gravity nesting: the sheet is an Up skyline that
// starts as a flat floor; each part's Down silhouette is slid across the
// sheet in fixed steps, and [skyline.Overlap] gives the height the part
// would rest at for each horizontal offset. The lowest (then leftmost)
// position wins, and the part's Up silhouette is merged back into the sheet
// so later parts stack on top of it.
package pack

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/skyfold/skyfold/pkg/errors"
	"github.com/skyfold/skyfold/pkg/geom"
	"github.com/skyfold/skyfold/pkg/skyline"
)

// Default option values applied by [Options.ValidateAndSetDefaults].
const (
	// DefaultStep is the horizontal scan resolution.
	DefaultStep = 1.0

	// SortArea orders parts largest-first before placing, which generally
	// packs tighter. SortNone keeps the caller's order.
	SortArea = "area"
	SortNone = "none"
)

// Options configures a packing run.
type Options struct {
	// SheetWidth is the horizontal extent of the sheet. Required.
	SheetWidth float64

	// Step is the horizontal scan resolution when searching placements.
	// Smaller steps pack tighter and cost proportionally more. Defaults to
	// DefaultStep.
	Step float64

	// Spacing is the vertical gap reserved above each placed part.
	Spacing float64

	// Sort selects the part ordering: SortArea (default) or SortNone.
	Sort string
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.SheetWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidSheet, "sheet width must be positive, got %v", o.SheetWidth)
	}
	if o.Step < 0 || o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidSheet, "step and spacing cannot be negative")
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Sort == "" {
		o.Sort = SortArea
	}
	if o.Sort != SortArea && o.Sort != SortNone {
		return errors.New(errors.ErrCodeInvalidInput, "unknown sort order %q", o.Sort)
	}
	return nil
}

// Packer places parts onto one sheet. A Packer is stateless across Pack
// calls; the same Packer can run several layouts.
type Packer struct {
	opts   Options
	logger *log.Logger
}

// New creates a Packer. A nil logger falls back to log.Default.
func New(opts Options, logger *log.Logger) (*Packer, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Packer{opts: opts, logger: logger}, nil
}

// Pack places all parts and returns the resulting layout. The context is
// checked between parts, so long runs can be cancelled.
func (p *Packer) Pack(ctx context.Context, parts []Part) (*Layout, error) {
	ordered := slices.Clone(parts)
	if p.opts.Sort == SortArea {
		slices.SortStableFunc(ordered, func(a, b Part) int {
			switch da, db := a.Poly.Area(), b.Poly.Area(); {
			case da > db:
				return -1
			case da < db:
				return 1
			default:
				return 0
			}
		})
	}

	// The sheet starts as a flat floor at height zero.
	sheet := skyline.Single[skyline.Up](0, 0, p.opts.SheetWidth, 0)

	layout := &Layout{
		SheetWidth: p.opts.SheetWidth,
		Placements: make([]Placement, 0, len(ordered)),
	}

	for _, part := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		placed, err := p.place(sheet, part)
		if err != nil {
			return nil, err
		}

		layout.Placements = append(layout.Placements, placed)
		layout.Height = max(layout.Height, placed.Poly.Bounds().MaxY)

		p.logger.Debug("placed part",
			"name", part.Name, "dx", placed.DX, "dy", placed.DY)
	}

	p.logger.Info("packed parts",
		"count", len(layout.Placements),
		"sheet_width", layout.SheetWidth,
		"height", layout.Height)

	return layout, nil
}

// place finds the lowest, leftmost resting position for one part and merges
// its upper silhouette into the sheet.
func (p *Packer) place(sheet *skyline.Skyline[skyline.Up], part Part) (Placement, error) {
	if err := part.Poly.Validate(); err != nil {
		return Placement{}, err
	}

	norm, _ := part.Poly.Normalize()
	width := norm.Bounds().Width()
	if width > p.opts.SheetWidth {
		return Placement{}, errors.New(errors.ErrCodeInvalidInput,
			"part %q is wider than the sheet (%v > %v)", part.Name, width, p.opts.SheetWidth)
	}

	bottom := geom.SilhouetteDown(norm)

	bestDX, bestDY := 0.0, 0.0
	for i, first := 0, true; ; i++ {
		dx := float64(i) * p.opts.Step
		if dx > p.opts.SheetWidth-width {
			// Always try the flush-right position before giving up.
			dx = p.opts.SheetWidth - width
		}

		cand := bottom.Clone()
		cand.Slide(dx)
		dy := skyline.Overlap(sheet, cand)

		if first || dy < bestDY {
			bestDX, bestDY = dx, dy
			first = false
		}

		if dx >= p.opts.SheetWidth-width {
			break
		}
	}

	top := geom.SilhouetteUp(norm)
	top.Slide(bestDX)
	top.Bump(bestDY + p.opts.Spacing)
	sheet.Merge(top)

	return Placement{
		Name: part.Name,
		DX:   bestDX,
		DY:   bestDY,
		Poly: norm.Translate(bestDX, bestDY),
	}, nil
}
