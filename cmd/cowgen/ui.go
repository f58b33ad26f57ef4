package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errColor     = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

// configureColor applies the persistent --color flag. The library
// auto-detects terminals, so only the explicit values need handling.
func configureColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (use auto, on, or off)", mode)
	}
	return nil
}

func errorf(format string, args ...any) {
	errColor.Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func warnf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "warning: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
