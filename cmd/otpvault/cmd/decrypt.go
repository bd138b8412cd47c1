package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// decryptCmd recovers plaintext from a token.
var decryptCmd = &cobra.Command{
	Use:   "decrypt <handle> <token>",
	Short: "Decrypt a token against a pad",
	Long: `Decrypt a transport token against the pad stored under a handle.
The token records which pad range produced it, so messages decrypt
correctly regardless of how many encrypts happened since. Decryption
does not consume pad bytes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := newKeeper()
		if err != nil {
			return err
		}
		defer k.Close()

		plaintext, err := k.DecryptMessage(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(plaintext)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}
