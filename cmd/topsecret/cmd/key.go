package cmd

import "github.com/spf13/cobra"

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Key file tools",
	Long:  `Commands for checking substitution key files.`,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}
