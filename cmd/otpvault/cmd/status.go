package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// statusCmd reports remaining pad capacity.
var statusCmd = &cobra.Command{
	Use:   "status <handle>",
	Short: "Show remaining capacity for a pad",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := newKeeper()
		if err != nil {
			return err
		}
		defer k.Close()

		summary, err := k.Status(args[0])
		if err != nil {
			return err
		}
		fp, err := k.Fingerprint(args[0])
		if err != nil {
			return err
		}

		c := color.New(color.FgGreen)
		if summary.Low() {
			c = color.New(color.FgYellow)
		}
		c.Fprintf(os.Stderr, "pad %q (%s): %s\n", args[0], fp, summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
