package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cowgen/cowgen"
	"github.com/cowgen/cowgen/compiler/gen"
	"github.com/cowgen/cowgen/compiler/load"
)

var describeCmd = &cobra.Command{
	Use:   "describe <manifest.yaml>",
	Short: "Show how each record in a manifest classifies",
	Long:  "Classify every record in the manifest and print its fields, mutability, and requested capabilities without generating code.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if err := configureColor(cmd); err != nil {
		return err
	}
	records, err := load.File(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := false
	for i, d := range records {
		if i > 0 {
			fmt.Fprintln(out)
		}
		x, err := cowgen.Expand(d)
		if err != nil {
			failed = true
			errorf("%s: %v", d.Name, err)
			continue
		}
		r := x.Record
		fmt.Fprintf(out, "%s%s\n", r.AccessLevel(), r.Name)
		w := tabwriter.NewWriter(out, 2, 8, 2, ' ', 0)
		for _, f := range r.Fields {
			binding := "let"
			storage := "record"
			if f.Mutable {
				binding = "var"
				storage = "shared"
			}
			deflt := ""
			if f.HasDefault() {
				deflt = "= " + f.Default
			}
			fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\t%s\n", binding, f.Name, f.RenderedType(), storage, deflt)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if caps := capabilityNames(r.Caps); len(caps) > 0 {
			fmt.Fprintf(out, "\tcapabilities: %s\n", strings.Join(caps, ", "))
		}
		for _, warn := range r.Warnings {
			warnf("%s: %s: %s", warn.Record, gen.Humanize(warn.Member), warn.Message)
		}
	}
	noun := "record"
	if len(records) != 1 {
		noun = gen.Plural(noun)
	}
	fmt.Fprintf(out, "\n%d %s\n", len(records), noun)
	if failed {
		return fmt.Errorf("some records failed to classify")
	}
	return nil
}

func capabilityNames(s gen.CapabilitySet) []string {
	var names []string
	for _, c := range []struct {
		name string
		on   bool
	}{
		{"equal", s.Equal},
		{"hash", s.Hash},
		{"encode", s.Encode},
		{"decode", s.Decode},
		{"description", s.Description},
	} {
		if c.on {
			names = append(names, c.name)
		}
	}
	return names
}
