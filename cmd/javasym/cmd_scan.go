package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dhamidi/javasym/java/codebase"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errScanFailures = errors.New("some files could not be extracted")

func newScanCmd(a *app) *cobra.Command {
	var workers int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Extract every .java file below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := codebase.ScanOptions{
				Include: a.cfg.Scan.Include,
				Exclude: a.cfg.Scan.Exclude,
				Workers: a.cfg.Scan.Workers,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if !quiet {
				opts.Reporter = newProgressReporter(os.Stderr)
			}

			results, err := codebase.Scan(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}

			failures := printScanSummary(cmd.OutOrStdout(), args[0], results)
			if failures > 0 {
				return fmt.Errorf("%w: %d of %d", errScanFailures, failures, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "files to extract in parallel")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show a progress bar")

	return cmd
}

// printScanSummary writes one line per file and returns the number of
// files that failed.
func printScanSummary(w io.Writer, root string, results []codebase.Result) int {
	failures := 0
	entities := 0
	for _, r := range results {
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			rel = r.Path
		}
		if r.Err != nil {
			failures++
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", rel, r.Err)
			continue
		}
		entities += r.Model.Len()
		fmt.Fprintf(w, "ok\t%s\t%d entities\n", rel, r.Model.Len())
	}
	fmt.Fprintf(w, "%d files, %d entities, %d errors\n", len(results), entities, failures)
	return failures
}

type progressReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

func (p *progressReporter) OnDiscovered(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Extracting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.out)
		}),
	)
}

func (p *progressReporter) OnScanned(result codebase.Result) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}
