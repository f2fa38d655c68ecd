// Export and import commands: JSONL round-trip of the archive.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export the archive as JSONL files",
	Long: `Export writes jobs.jsonl and plans.jsonl to the given directory,
creating it if needed. The default directory is <data-dir>/export.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import JSONL files into the archive",
	Long: `Import reads jobs.jsonl and plans.jsonl from the given directory and
upserts every record. Blank and malformed lines are skipped. The default
directory is <data-dir>/export.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// exchangeDir resolves the export/import directory argument.
func exchangeDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(dataDir, "export"), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	dir, err := exchangeDir(args)
	if err != nil {
		return err
	}

	backend, err := attachArchive()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := backend.ExportJSONL(dir); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Println("exported to", dir)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	dir, err := exchangeDir(args)
	if err != nil {
		return err
	}

	backend, err := attachArchive()
	if err != nil {
		return err
	}
	defer backend.Detach()

	jobs, plans, err := backend.ImportJSONL(dir)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Printf("imported %d jobs, %d plans from %s\n", jobs, plans, dir)
	return nil
}
