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

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/pathshift/cmd/pathshift/opts"
	"github.com/walteh/pathshift/pkg/regexgen"
	"gitlab.com/tozd/go/errors"
)

// NewRegexCmd creates the regex command
func NewRegexCmd(opts *opts.RootOpts) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "regex <example>",
		Short: "Build a regular expression from an example line",
		Long: `Regex turns an example into a pattern that matches it and lines shaped
like it. Every letter becomes its own capture group, digit and whitespace
runs become counted classes, and everything else is matched literally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := regexgen.Synthesize(args[0])

			if explain {
				data := pterm.TableData{{"class", "text", "token"}}
				for _, c := range regexgen.Chunks(args[0]) {
					data = append(data, []string{c.Class.String(), fmt.Sprintf("%q", c.Text), regexgen.Synthesize(c.Text).Source})
				}
				table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
				if err != nil {
					return errors.Errorf("rendering chunks: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), table)
			}

			fmt.Fprintln(cmd.OutOrStdout(), p.Source)
			if !p.Valid {
				return errors.Errorf("generated pattern is invalid: %w", p.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show how the example was split")

	return cmd
}
