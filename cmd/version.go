package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jbaldus/shorten"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("shorten %v/%v\n", shorten.Version, shorten.CommitSHA)
		},
	})
}
