package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var createLength int

// createCmd provisions a fresh pad for a handle.
var createCmd = &cobra.Command{
	Use:   "create <handle>",
	Short: "Create a new one-time pad",
	Long: `Create a new pad of random bytes for a handle. Fails if a pad
already exists under that handle. Copy the pad file to the other party
over a channel you trust; otpvault does not transport pads.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := newKeeper()
		if err != nil {
			return err
		}
		defer k.Close()

		summary, err := k.CreatePad(args[0], createLength)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(os.Stderr, "pad %q created: %s\n", args[0], summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().IntVarP(&createLength, "length", "l", 0, "pad length in bytes (default from config)")
}
