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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/pathshift/cmd/pathshift/opts"
	"github.com/walteh/pathshift/pkg/log"
	"github.com/walteh/pathshift/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		preset  string
		date    string
		pattern string
		rule    ruleFlags
		move    moveFlags
	)

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Filter, transform and move in one pass",
		Long: `Run applies the date filter, the pattern filter and the transform to the
input in that order, then moves the remaining paths. A stage that would
leave nothing is undone with a warning and the next stage sees the text
from before it. A preset fills in the pattern and transform flags that
were not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			if preset == "" && opts.Config != nil {
				preset = opts.Config.Preset
			}
			if preset != "" {
				p, err := text.LookupPreset(preset)
				if err != nil {
					return err
				}
				if pattern == "" {
					pattern = p.Pattern
				}
				if rule.rule.Phrases == "" {
					rule.rule.Phrases = p.Rule.Phrases
				}
				if rule.rule.Find == "" {
					rule.rule.Find = p.Rule.Find
				}
			}

			input, err := readInput(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			buf := text.NewBuffer(input)

			if date != "" {
				buf.SetLines(text.FilterByDate(buf.Text(), date))
				if buf.IsEmpty() {
					buf.Undo()
					logger.Warningf("date filter skipped: no line starts with %s", date)
				} else {
					logger.Infof("date filter: %d lines", buf.Len())
				}
			}

			if pattern != "" {
				lines, err := text.FilterByPattern(ctx, buf.Text(), pattern)
				switch {
				case errors.Is(err, text.ErrNoMatch):
					logger.Warningf("pattern filter skipped: %s", err)
				case err != nil:
					return errors.Errorf("filtering by pattern: %w", err)
				default:
					buf.SetLines(lines)
					logger.Infof("pattern filter: %d lines", buf.Len())
				}
			}

			if r := rule.resolved(); !r.IsZero() {
				res, err := text.Transform(buf.Text(), r)
				if err != nil {
					return errors.Errorf("transforming text: %w", err)
				}
				buf.SetLines(res.Lines)
				if buf.IsEmpty() {
					buf.Undo()
					logger.Warning("transform skipped: every line became empty")
				} else {
					logger.Infof("transform (%d removed, %d replaced): %d lines", res.Removals, res.Replacements, buf.Len())
				}
			}

			buf.SetLines(text.NormalizePaths(buf.Text()))

			return relocate(ctx, cmd, opts, &move, buf.Lines())
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", fmt.Sprintf("built-in preset to start from %v", text.PresetNames()))
	cmd.Flags().StringVar(&date, "date", "", "keep lines starting with this date")
	cmd.Flags().StringVar(&pattern, "pattern", "", "keep lines matching this regular expression")
	rule.register(cmd)
	move.register(cmd)

	return cmd
}
