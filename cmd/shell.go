package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"flightdb/internal/shell"
	"flightdb/internal/storage"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// First run against a fresh store file: create tables and load
	// seeds. Only the sqlite driver has a file to gate on.
	if flagDriver == storage.DriverSQLite {
		if _, err := e.seeder.BootstrapIfAbsent(ctx, e.storePath); err != nil {
			// Bootstrap failures are logged per table; the shell is
			// still usable for whatever did come up.
			e.log.Warn("bootstrap incomplete", "err", err)
		}
	}

	sh, err := shell.New(e.ds, e.seeder, e.storePath)
	if err != nil {
		return err
	}
	defer sh.Close()

	return sh.Run(ctx)
}
