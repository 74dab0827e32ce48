package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/skyfold/skyfold/pkg/errors"
	"github.com/skyfold/skyfold/pkg/geom"
	"github.com/skyfold/skyfold/pkg/manifest"
	"github.com/skyfold/skyfold/pkg/skyline"
)

// clearanceCommand creates the clearance command. It measures how far two
// manifest parts are from touching along one axis, using the parts at their
// authored coordinates.
func (c *CLI) clearanceCommand() *cobra.Command {
	var axis string

	cmd := &cobra.Command{
		Use:   "clearance [manifest] [part-a] [part-b]",
		Short: "Measure the gap between two parts along an axis",
		Long: `Clearance measures how far part-b could translate along the given axis
before its silhouette touches part-a. Parts are taken at the coordinates
written in the manifest. A positive value is a gap; a negative value means
the silhouettes already interfere by that much.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClearance(cmd, args[0], args[1], args[2], axis)
		},
	}

	cmd.Flags().StringVar(&axis, "axis", "y", "axis to measure along: y (vertical) or x (horizontal)")

	return cmd
}

func (c *CLI) runClearance(cmd *cobra.Command, input, nameA, nameB, axis string) error {
	m, err := manifest.Load(input)
	if err != nil {
		return err
	}

	pa, err := findPart(m, nameA)
	if err != nil {
		return err
	}
	pb, err := findPart(m, nameB)
	if err != nil {
		return err
	}

	var dist float64
	switch axis {
	case "y":
		dist = skyline.Overlap(geom.SilhouetteUp(pa), geom.SilhouetteDown(pb))
	case "x":
		dist = skyline.Overlap(geom.SilhouetteRight(pa), geom.SilhouetteLeft(pb))
	default:
		return errors.New(errors.ErrCodeInvalidAxis, "axis must be x or y, got %q", axis)
	}

	printKeyValue("part a", nameA)
	printKeyValue("part b", nameB)
	printKeyValue("axis", axis)

	switch {
	case math.IsInf(dist, -1):
		printInfo("Parts can never touch along the %s axis", axis)
	case dist > 0:
		printKeyValue("overlap", fmt.Sprintf("%.3f", dist))
		printWarning("Silhouettes interfere by %.3f", dist)
	default:
		printKeyValue("clearance", fmt.Sprintf("%.3f", -dist))
	}
	return nil
}

// findPart looks a part up by name and returns its polygon.
func findPart(m *manifest.Manifest, name string) (geom.Polygon, error) {
	for _, p := range m.Parts {
		if p.Name == name {
			return p.Polygon()
		}
	}
	return nil, errors.New(errors.ErrCodePartNotFound, "part %q is not in the manifest", name)
}
