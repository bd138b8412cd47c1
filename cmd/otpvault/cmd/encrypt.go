package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var encryptLength int

// encryptCmd encrypts a message, consuming pad bytes.
var encryptCmd = &cobra.Command{
	Use:   "encrypt <handle> <plaintext>",
	Short: "Encrypt a message against a pad",
	Long: `Encrypt a message against the pad stored under a handle, consuming
one pad byte per plaintext byte. The token is printed to stdout;
capacity diagnostics go to stderr. If no pad exists yet, one is created
first (--length sets its size).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := newKeeper()
		if err != nil {
			return err
		}
		defer k.Close()

		res, err := k.EncryptMessage(args[0], args[1], encryptLength)
		if err != nil {
			return err
		}

		// Token on stdout, diagnostics on stderr: the two must never mix.
		fmt.Println(res.Token)

		c := color.New(color.FgGreen)
		if res.Summary.Low() {
			c = color.New(color.FgYellow)
		}
		c.Fprintln(os.Stderr, res.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().IntVarP(&encryptLength, "length", "l", 0, "pad length in bytes if a pad must be created (default from config)")
}
