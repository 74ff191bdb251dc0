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
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/pathshift/cmd/pathshift/opts"
	"github.com/walteh/pathshift/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewFilterCmd creates the filter command
func NewFilterCmd(opts *opts.RootOpts) *cobra.Command {
	var date, pattern string

	cmd := &cobra.Command{
		Use:   "filter [files...]",
		Short: "Keep the lines for a date or a pattern",
		Long: `Filter keeps the lines starting with --date, then the lines matching
--pattern anywhere. Lines kept by the pattern lose their leading timestamp.
At least one of the two must be given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if date == "" && pattern == "" {
				return errors.Errorf("one of --date or --pattern is required: %w", text.ErrEmptyPattern)
			}

			input, err := readInput(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			lines := text.Lines(input)
			if date != "" {
				lines = text.FilterByDate(input, date)
			}
			if pattern != "" {
				lines, err = text.FilterByPattern(ctx, strings.Join(lines, "\n"), pattern)
				if err != nil {
					return errors.Errorf("filtering by pattern: %w", err)
				}
			}

			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "keep lines starting with this date, e.g. 05.05.2024")
	cmd.Flags().StringVar(&pattern, "pattern", "", "keep lines matching this regular expression")

	return cmd
}
