package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cowgen/cowgen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cowgen version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cowgen %s %s/%s\n", cowgen.Version, runtime.GOOS, runtime.GOARCH)
	},
}
