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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/pathshift/pkg/status"
)

// 📦 RunInfo describes a relocation run for logging
type RunInfo struct {
	ID          string // Run identifier
	Destination string // Destination root
	Candidates  int    // Number of paths planned
	DryRun      bool   // Whether the filesystem is left untouched
}

// 🎯 Logger renders run progress on a console and mirrors every line to zerolog
type Logger struct {
	zlog     zerolog.Logger
	console  io.Writer
	notices  io.Writer
	mu       sync.Mutex
	current  *RunInfo
	outcomes []status.Outcome
}

// 🏭 New creates a new logger. Run output goes to console, stage notices
// and warnings go to notices.
func New(console, notices io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		notices: notices,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 StartRun prints the run header and resets the recorded outcomes
func (l *Logger) StartRun(ctx context.Context, run RunInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &run
	l.outcomes = nil

	fmt.Fprintf(l.console, "[relocating into %s]\n",
		color.New(color.FgCyan).Sprint(run.Destination))

	mode := "live"
	if run.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d paths", run.Candidates),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("run_id", run.ID).
		Str("destination", run.Destination).
		Int("candidates", run.Candidates).
		Bool("dry_run", run.DryRun).
		Msg("starting relocation run")
}

// 📝 LogOutcome prints a single relocation outcome
func (l *Logger) LogOutcome(ctx context.Context, o status.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.outcomes = append(l.outcomes, o)

	fmt.Fprintln(l.console, status.FormatOutcomeLine(o))

	var ev *zerolog.Event
	switch o.Kind.Severity() {
	case status.SeverityError:
		ev = l.zlog.Error().AnErr("cause", o.Cause)
	case status.SeverityWarn:
		ev = l.zlog.Warn()
	default:
		ev = l.zlog.Info()
	}
	ev.Str("source", o.Source).
		Str("sub_path", o.SubPath).
		Str("destination", o.Destination).
		Str("kind", o.Kind.String()).
		Msg("relocation outcome")
}

// 📝 EndRun prints the summary entries and closes the current run
func (l *Logger) EndRun(ctx context.Context, summary []status.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range summary {
		fmt.Fprintln(l.console, status.FormatEntryLine(e))
		switch e.Severity {
		case status.SeverityError:
			l.zlog.Error().Msg(e.Message)
		case status.SeverityWarn:
			l.zlog.Warn().Msg(e.Message)
		default:
			l.zlog.Info().Msg(e.Message)
		}
	}

	if l.current == nil {
		return
	}

	l.zlog.Info().
		Str("run_id", l.current.ID).
		Int("outcomes", len(l.outcomes)).
		Msg("relocation run complete")

	l.current = nil
}

// 📝 Info reports a notice on the notices writer
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(l.notices).Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Warning reports something that was skipped or could not be used
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(l.notices).Println(msg)
	l.zlog.Warn().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
