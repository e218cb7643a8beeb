package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// listCmd lists the scaffs available in the pattern store.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scaffs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		patterns, err := store.LoadAll()
		if err != nil {
			return err
		}
		defaultScaff, err := store.DefaultScaff()
		if err != nil {
			return err
		}
		renderPatternList(os.Stdout, patterns, defaultScaff)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
