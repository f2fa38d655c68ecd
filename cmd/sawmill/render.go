// Render command: re-render an archived plan as SVG.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/internal/render"
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var (
	flagRenderOut   string
	flagRenderScale float64
)

var renderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render an archived plan to an SVG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderOut, "output", "o", "", "output SVG file (required)")
	renderCmd.Flags().Float64Var(&flagRenderScale, "scale", render.DefaultScale, "pixels per unit")
	renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) error {
	backend, err := attachArchive()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.PlansTable)
	if err != nil {
		return err
	}

	entity, err := table.Get(args[0])
	if err != nil {
		return fmt.Errorf("plan %q: %w", args[0], err)
	}
	plan := entity.(*types.Plan)

	if err := writeSVGFile(flagRenderOut, plan.Layout, flagRenderScale); err != nil {
		return err
	}
	fmt.Println("wrote", flagRenderOut)
	return nil
}
