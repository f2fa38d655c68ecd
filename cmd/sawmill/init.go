// Init command: create the configuration and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config and data directories and touch the archive",
	Long: `Init creates the configuration directory with a default config.yaml,
creates the data directory, and initializes the plan archive database.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// PersistentPreRunE already created the config dir and default
	// config.yaml; attaching creates the data dir and the database.
	backend, err := attachArchive()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return err
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	fmt.Println("config dir:", configDir)
	fmt.Println("data dir:  ", dataDir)
	return nil
}
