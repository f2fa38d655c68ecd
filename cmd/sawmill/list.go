// List command: show archived plans.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var flagListJob string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived plans, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListJob, "job", "", "only plans for this job name")
}

func runList(cmd *cobra.Command, args []string) error {
	backend, err := attachArchive()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.PlansTable)
	if err != nil {
		return err
	}

	filter := types.Filter{}
	if flagListJob != "" {
		filter["name"] = flagListJob
	}

	entities, err := table.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch plans: %w", err)
	}

	if flagJSON {
		summaries := make([]map[string]any, 0, len(entities))
		for _, e := range entities {
			summaries = append(summaries, e.(*types.Plan).Summary())
		}
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal plans: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entities) == 0 {
		fmt.Println("no plans archived")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %6s  %7s  %s\n", "PLAN", "JOB", "BOARDS", "SCORE", "CREATED")
	for _, e := range entities {
		p := e.(*types.Plan)
		fmt.Printf("%-36s  %-20s  %6d  %7.4f  %s\n",
			p.PlanID, p.Name, p.BoardsUsed, p.Score, p.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
