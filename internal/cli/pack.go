package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyfold/skyfold/pkg/pipeline"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "json"
	width   float64  // sheet width override
	step    float64  // scan step override
	spacing float64  // part spacing override
	sort    string   // part ordering: "area" or "none"
	scale   float64  // SVG scale
	labels  bool     // draw part names in the SVG
	noCache bool     // disable the layout cache
	refresh bool     // recompute even when cached
}

// packCommand creates the pack command, the main entry point of the CLI.
// It loads a TOML manifest, nests the parts onto the sheet, and writes one
// output file per requested format.
func (c *CLI) packCommand() *cobra.Command {
	var formatsStr string
	opts := packOpts{}

	cmd := &cobra.Command{
		Use:   "pack [manifest]",
		Short: "Nest manifest parts onto a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runPack(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override the manifest sheet width")
	cmd.Flags().Float64Var(&opts.step, "step", 0, "override the horizontal scan step")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "override the vertical part spacing")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "part ordering: area (default), none")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "SVG scale in user units per model unit")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw part names in the SVG")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached layout exists")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, input string, opts *packOpts) error {
	logger := loggerFromContext(cmd.Context())
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		ManifestPath: input,
		SheetWidth:   opts.width,
		Step:         opts.step,
		Spacing:      opts.spacing,
		Sort:         opts.sort,
		Formats:      opts.formats,
		Scale:        opts.scale,
		Labels:       opts.labels,
		Refresh:      opts.refresh,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d parts", result.Stats.PartCount))

	printSuccess("Packed %s", input)
	printStats(result.Stats.PartCount, result.Stats.Height, result.CacheInfo.LayoutHit)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatSVG {
		printNextStep("Export coordinates", fmt.Sprintf("%s pack %s -f json", appName, input))
	}
	return nil
}
