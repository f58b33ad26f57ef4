package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cowgen/cowgen"
)

var rootCmd = &cobra.Command{
	Use:   "cowgen",
	Short: "Copy-on-write storage code generator",
	Long:  `cowgen expands record declarations into copy-on-write storage code: shared storage, uniqueness-guarded accessors, and capability extensions.`,
}

func main() {
	rootCmd.Version = cowgen.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
