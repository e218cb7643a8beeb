package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultCmd manages the default scaff used when commands omit a name.
var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Manage the default scaff",
}

var defaultSetCmd = &cobra.Command{
	Use:   "set <scaff>",
	Short: "Set the default scaff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.SetDefaultScaff(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default scaff set to %q\n", args[0])
		return nil
	},
}

var defaultGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current default scaff",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		name, err := store.DefaultScaff()
		if err != nil {
			return err
		}
		if name == "" {
			fmt.Println("No default scaff set. Use 'scaff default set <name>' to set one.")
			return nil
		}
		fmt.Printf("Current default scaff: %s\n", name)
		return nil
	},
}

var defaultClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the default scaff",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.ClearDefaultScaff(); err != nil {
			return err
		}
		fmt.Println("Default scaff cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
	defaultCmd.AddCommand(defaultSetCmd)
	defaultCmd.AddCommand(defaultGetCmd)
	defaultCmd.AddCommand(defaultClearCmd)
}
