// Plan command: solve a job file and report the best layouts.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/internal/render"
	"github.com/mesh-intelligence/sawmill/internal/solver"
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var (
	flagPlanAttempts  int
	flagPlanSeed      int64
	flagPlanTop       int
	flagPlanNoCleanup bool
	flagPlanSVG       string
	flagPlanSave      bool
)

var planCmd = &cobra.Command{
	Use:   "plan <job.yaml>",
	Short: "Solve a cutting layout for a job file",
	Long: `Plan searches for cutting layouts that place every cutlist piece on the
stock boards, ranks the viable layouts, and prints the best one.

With --attempts 0 the search tries every distinct cutlist ordering instead
of random restarts. --seed reproduces a previous run exactly.

Example:
  sawmill plan hall-table.yaml
  sawmill plan hall-table.yaml --attempts 500 --seed 42 --svg layout.svg
  sawmill plan hall-table.yaml --save`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&flagPlanAttempts, "attempts", 0, "random restarts (0 for exhaustive search)")
	planCmd.Flags().Int64Var(&flagPlanSeed, "seed", 0, "random seed (0 derives one from the clock)")
	planCmd.Flags().IntVar(&flagPlanTop, "top", 0, "ranked layouts to keep")
	planCmd.Flags().BoolVar(&flagPlanNoCleanup, "no-cleanup", false, "skip the leftover-piece cleanup pass")
	planCmd.Flags().StringVar(&flagPlanSVG, "svg", "", "write the best layout as SVG to this file")
	planCmd.Flags().BoolVar(&flagPlanSave, "save", false, "archive the job and the best plan")
}

func runPlan(cmd *cobra.Command, args []string) error {
	job, err := types.LoadJob(args[0])
	if err != nil {
		return err
	}

	opts := solverOptions()
	if cmd.Flags().Changed("attempts") {
		opts.Attempts = flagPlanAttempts
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = flagPlanSeed
	}
	if cmd.Flags().Changed("top") {
		opts.TopN = flagPlanTop
	}
	if flagPlanNoCleanup {
		opts.Cleanup = false
	}

	result, err := solver.Solve(cmd.Context(), job, opts)
	if err != nil {
		return err
	}

	layout := result.Best.Layout(job.Spacing)

	if flagPlanSVG != "" {
		if err := writeSVGFile(flagPlanSVG, layout, render.DefaultScale); err != nil {
			return err
		}
	}

	var planID string
	if flagPlanSave {
		planID, err = savePlan(job, result, opts)
		if err != nil {
			return err
		}
	}

	if flagJSON {
		out := map[string]any{
			"name":   job.Name,
			"layout": layout,
			"ranked": rankedSummary(result),
			"stats":  statsSummary(result.Stats),
		}
		if planID != "" {
			out["plan_id"] = planID
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	render.WriteText(os.Stdout, layout)

	fmt.Printf("\nranked layouts (%d viable of %d orderings):\n", result.Stats.Viable, result.Stats.Attempts)
	for i, s := range result.Ranked {
		fmt.Printf("  %2d. boards %d  score %.4f\n", i+1, s.BoardsUsed, s.Score)
	}
	fmt.Printf("seed %d, elapsed %s\n", result.Stats.Seed, result.Stats.Elapsed.Round(1e6))

	if flagPlanSVG != "" {
		fmt.Println("wrote", flagPlanSVG)
	}
	if planID != "" {
		fmt.Println("saved plan", planID)
	}
	return nil
}

// savePlan archives the job source and the best solution, returning the
// new plan ID.
func savePlan(job *types.Job, result *solver.Result, opts solver.Options) (string, error) {
	backend, err := attachArchive()
	if err != nil {
		return "", err
	}
	defer backend.Detach()

	source, err := job.Source()
	if err != nil {
		return "", err
	}

	jobsTable, err := backend.GetTable(types.JobsTable)
	if err != nil {
		return "", err
	}
	jobID, err := jobsTable.Set("", &types.ArchivedJob{Name: job.Name, Source: source})
	if err != nil {
		return "", fmt.Errorf("archive job: %w", err)
	}

	plansTable, err := backend.GetTable(types.PlansTable)
	if err != nil {
		return "", err
	}
	plan := &types.Plan{
		JobID:      jobID,
		Name:       job.Name,
		BoardsUsed: result.Best.BoardsUsed,
		Score:      result.Best.Score,
		Attempts:   opts.Attempts,
		Seed:       result.Stats.Seed,
		Layout:     result.Best.Layout(job.Spacing),
	}
	planID, err := plansTable.Set("", plan)
	if err != nil {
		return "", fmt.Errorf("archive plan: %w", err)
	}
	return planID, nil
}

// writeSVGFile renders the layout as SVG into path.
func writeSVGFile(path string, layout types.Layout, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg file: %w", err)
	}
	render.WriteSVG(f, layout, scale)
	if err := f.Close(); err != nil {
		return fmt.Errorf("close svg file: %w", err)
	}
	return nil
}

// rankedSummary lists the ranked layouts without their geometry.
func rankedSummary(result *solver.Result) []map[string]any {
	out := make([]map[string]any, 0, len(result.Ranked))
	for _, s := range result.Ranked {
		out = append(out, map[string]any{
			"boards_used": s.BoardsUsed,
			"score":       s.Score,
			"attempt":     s.Attempt,
		})
	}
	return out
}

// statsSummary flattens solver stats for JSON output.
func statsSummary(stats solver.Stats) map[string]any {
	out := map[string]any{
		"attempts": stats.Attempts,
		"viable":   stats.Viable,
		"seed":     stats.Seed,
		"elapsed":  stats.Elapsed.String(),
	}
	if stats.Permutations != nil {
		out["permutations"] = stats.Permutations.String()
	}
	return out
}
