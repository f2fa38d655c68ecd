// Delete command: remove archived plans and jobs.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

var flagDeleteJob bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an archived plan (or a job and its plans with --job)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&flagDeleteJob, "job", false, "treat the ID as a job ID and delete its plans too")
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, err := attachArchive()
	if err != nil {
		return err
	}
	defer backend.Detach()

	tableName, noun := types.PlansTable, "plan"
	if flagDeleteJob {
		tableName, noun = types.JobsTable, "job"
	}
	table, err := backend.GetTable(tableName)
	if err != nil {
		return err
	}

	if err := table.Delete(args[0]); err != nil {
		return fmt.Errorf("%s %q: %w", noun, args[0], err)
	}
	fmt.Printf("deleted %s %s\n", noun, args[0])
	return nil
}
