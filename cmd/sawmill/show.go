// Show command: display one archived plan.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/internal/render"
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display an archived plan with its layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if flagJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Plan:     %s\n", plan.PlanID)
	fmt.Printf("Job:      %s (%s)\n", plan.Name, plan.JobID)
	fmt.Printf("Boards:   %d\n", plan.BoardsUsed)
	fmt.Printf("Score:    %.4f\n", plan.Score)
	fmt.Printf("Attempts: %d\n", plan.Attempts)
	fmt.Printf("Seed:     %d\n", plan.Seed)
	fmt.Printf("Created:  %s\n", plan.CreatedAt.Format(time.RFC3339))
	fmt.Println()
	render.WriteText(os.Stdout, plan.Layout)
	return nil
}
