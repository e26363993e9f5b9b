package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create all registered tables and load their seed files",
	Long:  "Runs the bootstrap unconditionally: every registered table is created (if absent) and its seed file loaded. Existing rows are kept; seed rows are appended.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.seeder.Bootstrap(ctx); err != nil {
			return err
		}
		pterm.Println("Seeding complete.")
		return nil
	},
}
