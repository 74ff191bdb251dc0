// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/walteh/pathshift/cmd/pathshift/opts"
	"github.com/walteh/pathshift/pkg/config"
	"github.com/walteh/pathshift/pkg/log"
	"github.com/walteh/pathshift/pkg/operation"
	"github.com/walteh/pathshift/pkg/state"
	"github.com/walteh/pathshift/pkg/status"
	"github.com/walteh/pathshift/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrFailedMoves is returned when a run finished but some moves failed
var ErrFailedMoves = errors.Base("some files failed to move")

// moveFlags binds the relocation flags. Unset flags fall back to the config.
type moveFlags struct {
	destination string
	workers     int
	timeout     time.Duration
	dryRun      bool
	noProgress  bool
	journal     string
}

func (f *moveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.destination, "dest", "", "destination root the files are moved under")
	cmd.Flags().IntVar(&f.workers, "workers", config.DefaultWorkers, "number of concurrent moves")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "time limit for a single move, 0 for none")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report what would move without touching files")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "hide the progress bar")
	cmd.Flags().StringVar(&f.journal, "journal", "", "append the run to this journal file")
}

// journalPath returns the journal file from the flag or cfg
func (f *moveFlags) journalPath(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("journal") || cfg == nil {
		return f.journal
	}
	return cfg.Journal
}

// options merges the flags over cfg
func (f *moveFlags) options(cmd *cobra.Command, cfg *config.Config) operation.Options {
	if cfg == nil {
		cfg = config.Default()
	}

	o := operation.Options{
		Destination: cfg.Destination,
		Workers:     cfg.Workers,
		MoveTimeout: cfg.Timeout(),
		DryRun:      cfg.DryRun,
		Formatter:   status.NewDefaultFormatter(),
	}
	if cmd.Flags().Changed("dest") {
		o.Destination = f.destination
	}
	if cmd.Flags().Changed("workers") {
		o.Workers = f.workers
	}
	if cmd.Flags().Changed("timeout") {
		o.MoveTimeout = f.timeout
	}
	if cmd.Flags().Changed("dry-run") {
		o.DryRun = f.dryRun
	}
	return o
}

// newProgressBar creates the bar shown while files move
func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Moving files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// 🚚 relocate moves lines under the destination and renders the report
func relocate(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts, f *moveFlags, lines []string) error {
	options := f.options(cmd, o.Config)

	var bar *progressbar.ProgressBar
	if total := len(operation.Candidates(lines)); total > 0 && !f.noProgress {
		bar = newProgressBar(cmd.ErrOrStderr(), total)
		options.Progress = func(moved, total int) {
			bar.Describe(options.Formatter.FormatProgress(moved, total))
			_ = bar.Set(moved)
		}
	}

	r, err := operation.NewRelocator(options)
	if err != nil {
		return errors.Errorf("configuring relocation: %w", err)
	}

	report, err := r.Relocate(ctx, lines)
	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if report != nil {
		renderReport(ctx, log.FromContext(ctx), report)
		if path := f.journalPath(cmd, o.Config); path != "" {
			if jerr := state.Record(ctx, path, report); jerr != nil {
				return errors.Errorf("recording run: %w", jerr)
			}
		}
	}
	if err != nil {
		return errors.Errorf("relocating paths: %w", err)
	}

	if report.HasFailures() {
		return errors.Errorf("%d of %d paths: %w", report.Statistics.Error, report.Statistics.Total, ErrFailedMoves)
	}
	return nil
}

// renderReport prints every outcome followed by the summary
func renderReport(ctx context.Context, logger *log.Logger, report *operation.Report) {
	logger.StartRun(ctx, log.RunInfo{
		ID:          report.RunID.String(),
		Destination: report.Destination,
		Candidates:  report.Candidates,
		DryRun:      report.DryRun,
	})
	for _, o := range report.Outcomes {
		logger.LogOutcome(ctx, o)
	}
	if !report.Complete() {
		logger.Warningf("run aborted after %d of %d paths", report.Statistics.Total, report.Candidates)
	}
	// Entries holds one entry per outcome ahead of the summary
	logger.EndRun(ctx, report.Entries()[len(report.Outcomes):])
}

// NewMoveCmd creates the move command
func NewMoveCmd(opts *opts.RootOpts) *cobra.Command {
	var flags moveFlags

	cmd := &cobra.Command{
		Use:   "move [files...]",
		Short: "Move every listed path under a destination root",
		Long: `Move reads one path per line, strips single quotes, and moves each file
to <dest>/<parent>/<name>, where parent and name are the last two segments
of the source. Missing sources are reported and skipped. The command fails
when the run is aborted or any move fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := readInput(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			return relocate(ctx, cmd, opts, &flags, text.NormalizePaths(input))
		},
	}

	flags.register(cmd)

	return cmd
}
