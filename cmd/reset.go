package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the store file after confirmation",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storeFileName(flagProject)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			pterm.Println("No store file to remove.")
			return nil
		}

		confirmed, err := pterm.DefaultInteractiveConfirm.Show("Remove " + path + "?")
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Println("Aborted.")
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		pterm.Println("Removed " + path + ". It will be recreated on the next run.")
		return nil
	},
}
