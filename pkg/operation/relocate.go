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

package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/pathshift/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoDestination is returned when no destination root was given.
	ErrNoDestination = errors.Base("destination directory has not been set")
	// ErrEmptyBuffer is returned when there is no path to relocate.
	ErrEmptyBuffer = errors.Base("nothing to move")
	// ErrDestinationUnusable is returned when the destination root cannot
	// receive files. It aborts the run.
	ErrDestinationUnusable = errors.Base("destination directory is unusable")
)

// ProgressFunc is called after every successful move with the number of
// files moved so far and the number of candidates.
type ProgressFunc func(moved, total int)

// 🔧 Options configures a Relocator
type Options struct {
	// Destination is the root the sub-paths are recreated under
	Destination string
	// Workers is the number of concurrent moves, 1 when unset
	Workers int
	// MoveTimeout bounds a single move, no limit when zero
	MoveTimeout time.Duration
	// DryRun classifies paths without touching the filesystem
	DryRun bool
	// Progress receives "moved k/total" updates
	Progress ProgressFunc
	// Formatter words report entries, status.DefaultFormatter when nil
	Formatter status.Formatter
}

// 🎮 Relocator moves files into a destination tree
type Relocator struct {
	root      string
	runner    *runner
	timeout   time.Duration
	dryRun    bool
	progress  ProgressFunc
	formatter status.Formatter
}

// 🏭 NewRelocator creates a relocator with the given options
func NewRelocator(opts Options) (*Relocator, error) {
	if strings.TrimSpace(opts.Destination) == "" {
		return nil, ErrNoDestination
	}
	if opts.Workers < 0 {
		return nil, errors.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if opts.MoveTimeout < 0 {
		return nil, errors.Errorf("move timeout must not be negative, got %s", opts.MoveTimeout)
	}
	if opts.Formatter == nil {
		opts.Formatter = status.NewDefaultFormatter()
	}
	return &Relocator{
		root:      filepath.Clean(strings.TrimSpace(opts.Destination)),
		runner:    newRunner(opts.Workers),
		timeout:   opts.MoveTimeout,
		dryRun:    opts.DryRun,
		progress:  opts.Progress,
		formatter: opts.Formatter,
	}, nil
}

// 📋 Report is the full result of one run
type Report struct {
	RunID       uuid.UUID
	Destination string
	DryRun      bool
	Candidates  int              // Non-empty lines that were planned
	Outcomes    []status.Outcome // In input order
	Statistics  status.Statistics
	Started     time.Time
	Finished    time.Time

	formatter status.Formatter
}

// Entries renders the report as severity-tagged entries
func (r *Report) Entries() []status.Entry {
	return status.Entries(r.Outcomes, r.Statistics, r.formatter)
}

// Complete reports whether every candidate has an outcome
func (r *Report) Complete() bool {
	return r.Statistics.Total == r.Candidates
}

// HasFailures reports whether any move failed
func (r *Report) HasFailures() bool {
	return r.Statistics.Error > 0
}

// Candidates trims lines and drops the empty ones
func Candidates(lines []string) []string {
	var out []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// 🏃 Relocate moves every path in lines under the destination root.
//
// Per-path problems never stop the run; they become SkippedNotFound or
// Failed outcomes. Input validation errors are returned with a nil report.
// A fatal error during the run is returned together with a report holding
// every outcome collected before it. When ctx is cancelled, a move cut short
// by the cancellation gets no outcome, so the report only counts paths that
// were actually processed.
func (r *Relocator) Relocate(ctx context.Context, lines []string) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	candidates := Candidates(lines)
	if len(candidates) == 0 {
		return nil, ErrEmptyBuffer
	}

	report := &Report{
		RunID:       uuid.New(),
		Destination: r.root,
		DryRun:      r.dryRun,
		Candidates:  len(candidates),
		Started:     time.Now(),
		formatter:   r.formatter,
	}

	logger.Debug().
		Str("run_id", report.RunID.String()).
		Str("destination", r.root).
		Int("candidates", len(candidates)).
		Int("workers", r.runner.workers).
		Bool("dry_run", r.dryRun).
		Msg("starting relocation")

	if err := r.checkRoot(); err != nil {
		report.Finished = time.Now()
		return report, err
	}

	slots := make([]*status.Outcome, len(candidates))
	moved := 0
	run(ctx, r.runner, len(candidates),
		func(ctx context.Context, i int) status.Outcome {
			return r.relocateOne(ctx, candidates[i])
		},
		func(i int, o status.Outcome) {
			if o.Kind == status.Failed && ctx.Err() != nil && errors.Is(o.Cause, ctx.Err()) {
				logger.Debug().Str("source", o.Source).Msg("move interrupted by abort")
				return
			}
			slots[i] = &o
			logger.Debug().
				Str("source", o.Source).
				Str("destination", o.Destination).
				Str("kind", o.Kind.String()).
				AnErr("cause", o.Cause).
				Msg("relocated path")
			if o.Kind == status.Moved {
				moved++
				if r.progress != nil {
					r.progress(moved, len(candidates))
				}
			}
		},
	)

	for _, o := range slots {
		if o != nil {
			report.Outcomes = append(report.Outcomes, *o)
		}
	}
	report.Statistics = status.Tally(report.Outcomes)
	report.Finished = time.Now()

	logger.Debug().
		Int("total", report.Statistics.Total).
		Int("moved", report.Statistics.Moved).
		Int("warn", report.Statistics.Warn).
		Int("error", report.Statistics.Error).
		Dur("elapsed", report.Finished.Sub(report.Started)).
		Msg("relocation finished")

	if !report.Complete() {
		return report, errors.Errorf("relocation aborted after %d of %d paths: %w", report.Statistics.Total, len(candidates), context.Cause(ctx))
	}
	return report, nil
}

// checkRoot fails when the destination root exists but is not a directory,
// or when it is missing and cannot be created. A dry run creates nothing.
func (r *Relocator) checkRoot() error {
	info, err := os.Stat(r.root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if r.dryRun {
			return nil
		}
		if err := os.MkdirAll(r.root, 0o755); err != nil {
			return errors.Errorf("creating %s: %w", r.root, errors.WrapWith(err, ErrDestinationUnusable))
		}
		return nil
	case err != nil:
		return errors.WrapWith(err, ErrDestinationUnusable)
	case !info.IsDir():
		return errors.Errorf("%s is not a directory: %w", r.root, ErrDestinationUnusable)
	}
	return nil
}

// relocateOne derives the destination for source and moves it.
func (r *Relocator) relocateOne(ctx context.Context, source string) status.Outcome {
	o := status.Outcome{Source: source}

	sp, err := ParseSubPath(source)
	if err != nil {
		o.Kind = status.Failed
		o.Cause = err
		return o
	}
	o.SubPath = sp.String()
	o.Destination = filepath.Join(r.root, sp.Parent, sp.Name)

	if _, err := os.Lstat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.Kind = status.SkippedNotFound
			return o
		}
		o.Kind = status.Failed
		o.Cause = errors.Errorf("checking source: %w", err)
		return o
	}

	if r.dryRun {
		o.Kind = status.Moved
		return o
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := os.MkdirAll(filepath.Dir(o.Destination), 0o755); err != nil {
		o.Kind = status.Failed
		o.Cause = errors.Errorf("creating destination directory: %w", err)
		return o
	}

	if err := Move(ctx, source, o.Destination); err != nil {
		if _, statErr := os.Lstat(source); errors.Is(statErr, fs.ErrNotExist) {
			o.Kind = status.SkippedNotFound
			return o
		}
		o.Kind = status.Failed
		o.Cause = err
		return o
	}

	o.Kind = status.Moved
	return o
}
