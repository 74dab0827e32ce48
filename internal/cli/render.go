package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	skio "github.com/skyfold/skyfold/pkg/io"
	"github.com/skyfold/skyfold/pkg/pipeline"
	"github.com/skyfold/skyfold/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "json"
	scale      float64  // SVG scale
	labels     bool     // draw part names in the SVG
	silhouette bool     // overlay the sheet's top envelope
}

// renderCommand creates the render command. It redraws an exported layout
// without re-running the packer, which is how cached layouts get turned
// into new artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render an exported layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG scale in user units per model unit")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw part names in the SVG")
	cmd.Flags().BoolVar(&opts.silhouette, "silhouette", false, "overlay the sheet's top envelope in the SVG")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	layout, err := skio.ImportJSON(input)
	if err != nil {
		return err
	}
	bounds := layout.PartBounds()
	logger.Info("loaded layout",
		"placements", len(layout.Placements),
		"sheet_width", layout.SheetWidth,
		"used", fmt.Sprintf("%.1f x %.1f", bounds.Width(), bounds.Height()))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case pipeline.FormatSVG:
			svgOpts := []render.SVGOption{render.WithScale(opts.scale)}
			if opts.labels {
				svgOpts = append(svgOpts, render.WithLabels())
			}
			if opts.silhouette {
				svgOpts = append(svgOpts, render.WithSilhouette())
			}
			data = render.RenderSVG(layout, svgOpts...)
		case pipeline.FormatJSON:
			// Re-exporting normalizes formatting of hand-edited files.
			if err := skio.ExportJSON(layout, outputPath(base, opts.output, format, len(opts.formats))); err != nil {
				return err
			}
			printFile(outputPath(base, opts.output, format, len(opts.formats)))
			continue
		}

		path := outputPath(base, opts.output, format, len(opts.formats))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %s", input)
	return nil
}

// outputPath picks the output file for a format: the explicit --output when
// a single format was requested, base.format otherwise.
func outputPath(base, output, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	return base + "." + format
}
