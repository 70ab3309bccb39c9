package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhamidi/javasym/java/codebase"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-extract .java files below a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := codebase.New(args[0])
			opts := codebase.ScanOptions{
				Include: a.cfg.Scan.Include,
				Exclude: a.cfg.Scan.Exclude,
				Workers: a.cfg.Scan.Workers,
			}
			results, err := c.ScanAll(ctx, opts)
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			printScanSummary(out, args[0], results)

			matcher, err := codebase.NewMatcher(opts.Include, opts.Exclude)
			if err != nil {
				return err
			}
			w, err := codebase.NewFileWatcher(c, matcher, debounce)
			if err != nil {
				return fmt.Errorf("watch %s: %w", args[0], err)
			}
			w.OnChange(func(changes []codebase.Change) {
				printChanges(out, changes)
			})

			fmt.Fprintf(out, "watching %s\n", args[0])
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before re-extracting")

	return cmd
}

func printChanges(w io.Writer, changes []codebase.Change) {
	for _, change := range changes {
		switch {
		case change.Removed:
			fmt.Fprintf(w, "removed\t%s\n", change.Path)
		case change.Document.Err != nil:
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", change.Path, change.Document.Err)
		default:
			fmt.Fprintf(w, "ok\t%s\t%d entities\n", change.Path, change.Document.Model().Len())
		}
	}
}

