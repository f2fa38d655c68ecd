// Check command: validate a job file and report feasibility.
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/internal/solver"
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <job.yaml>",
	Short: "Validate a job file and report feasibility",
	Long: `Check parses and validates the job file, then reports whether the cutlist
can possibly fit the stock: total areas, the utilization bound, and the size
of the exhaustive search space. It does not run the solver.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	job, err := types.LoadJob(args[0])
	if err != nil {
		return err
	}

	cutArea := job.CutArea()
	boardArea := job.BoardArea()
	space := solver.SearchSpace(job)
	checkErr := solver.CheckJob(job)

	if flagJSON {
		out := map[string]any{
			"name":         job.Name,
			"boards":       len(job.Boards),
			"pieces":       job.TotalPieces(),
			"cut_area":     cutArea,
			"board_area":   boardArea,
			"utilization":  cutArea / boardArea,
			"search_space": space.String(),
			"feasible":     checkErr == nil,
		}
		if checkErr != nil {
			out["reason"] = checkErr.Error()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
		return checkErr
	}

	fmt.Printf("job:          %s\n", job.Name)
	fmt.Printf("boards:       %d (area %.2f)\n", len(job.Boards), boardArea)
	fmt.Printf("pieces:       %d (area %.2f)\n", job.TotalPieces(), cutArea)
	fmt.Printf("utilization:  %.1f%% of stock at best\n", 100*cutArea/boardArea)
	fmt.Printf("search space: %s distinct orderings\n", space.String())

	if checkErr != nil {
		if errors.Is(checkErr, solver.ErrInfeasible) || errors.Is(checkErr, solver.ErrCutTooLarge) {
			fmt.Printf("infeasible: %v\n", checkErr)
		}
		return checkErr
	}
	fmt.Println("feasible")
	return nil
}
