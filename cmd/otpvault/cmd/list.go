package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd lists stored pad handles.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored pad handles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := newKeeper()
		if err != nil {
			return err
		}
		defer k.Close()

		handles, err := k.Handles()
		if err != nil {
			return err
		}
		for _, h := range handles {
			fmt.Println(h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
