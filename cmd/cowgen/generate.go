package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cowgen/cowgen"
	"github.com/cowgen/cowgen/compiler/gen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <manifest.yaml>",
	Short: "Generate copy-on-write storage code from a record manifest",
	Long:  "Read record declarations from a manifest and write one generated source file per record.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("out", "o", ".", "output directory for generated files")
	generateCmd.Flags().String("header", "", "override the generated file header comment")
	generateCmd.Flags().String("suffix", "", "override the generated file name suffix")
	generateCmd.Flags().Bool("snake-keys", false, "emit snake_case raw values for generated coding keys")
	generateCmd.Flags().Int("workers", 0, "number of records expanded concurrently (0 = all CPUs)")
	generateCmd.Flags().BoolP("watch", "w", false, "regenerate whenever the manifest changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := configureColor(cmd); err != nil {
		return err
	}
	manifest := args[0]
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		warnings, err := cowgen.Generate(ctx, manifest, out, opts...)
		for _, w := range warnings {
			warnf("%s.%s: %s", w.Record, w.Member, w.Message)
		}
		if err != nil {
			errorf("%v", err)
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "generated %s -> %s\n", manifest, out)
		return nil
	}

	if !watch {
		return run(cmd.Context())
	}
	return watchAndRun(cmd.Context(), manifest, run)
}

func generateOptions(cmd *cobra.Command) ([]gen.Option, error) {
	var opts []gen.Option
	if header, err := cmd.Flags().GetString("header"); err != nil {
		return nil, err
	} else if header != "" {
		opts = append(opts, gen.WithHeader(header))
	}
	if suffix, err := cmd.Flags().GetString("suffix"); err != nil {
		return nil, err
	} else if suffix != "" {
		opts = append(opts, gen.WithFileSuffix(suffix))
	}
	if snake, err := cmd.Flags().GetBool("snake-keys"); err != nil {
		return nil, err
	} else if snake {
		opts = append(opts, gen.WithSnakeCaseKeys())
	}
	if workers, err := cmd.Flags().GetInt("workers"); err != nil {
		return nil, err
	} else if workers > 0 {
		opts = append(opts, gen.WithWorkers(workers))
	}
	return opts, nil
}

// watchAndRun regenerates on every manifest change until interrupted.
// The watch is on the manifest's directory: editors typically replace
// the file on save, which drops a watch registered on the file itself.
func watchAndRun(parent context.Context, manifest string, run func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(manifest)); err != nil {
		return err
	}

	// Failures keep the watch alive; the next save gets another chance.
	if err := run(ctx); err != nil {
		errorf("waiting for changes to retry")
	}

	abs, err := filepath.Abs(manifest)
	if err != nil {
		return err
	}
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Editors fire several events per save; coalesce them.
			debounce = time.After(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			errorf("watch: %v", err)
		case <-debounce:
			debounce = nil
			dimColor.Fprintf(os.Stderr, "manifest changed, regenerating\n")
			if err := run(ctx); err != nil {
				errorf("waiting for changes to retry")
			}
		}
	}
}
