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

// ruleFlags binds the flags that make up a transform rule
type ruleFlags struct {
	rule          text.Rule
	swapSeparator bool
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rule.Phrases, "remove", "", "comma separated phrases to remove, with the whitespace after them")
	cmd.Flags().StringVar(&f.rule.Find, "find", "", "literal text to replace")
	cmd.Flags().StringVar(&f.rule.Replace, "replace", "", "replacement for --find")
	cmd.Flags().BoolVar(&f.swapSeparator, "swap-separator", false, "flip the path separator style of --replace")
}

// resolved returns the rule with the separator swap applied
func (f *ruleFlags) resolved() text.Rule {
	rule := f.rule
	if f.swapSeparator {
		rule.Replace = text.SwapSeparator(rule.Replace)
	}
	return rule
}

// NewTransformCmd creates the transform command
func NewTransformCmd(opts *opts.RootOpts) *cobra.Command {
	var flags ruleFlags

	cmd := &cobra.Command{
		Use:   "transform [files...]",
		Short: "Remove phrases and replace text on every line",
		Long: `Transform removes each --remove phrase together with the whitespace that
follows it, then replaces --find with --replace. Both --find and --replace
must be set for the replacement to happen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := readInput(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			res, err := text.Transform(input, flags.resolved())
			if err != nil {
				return errors.Errorf("transforming text: %w", err)
			}

			for _, line := range res.Lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			log.FromContext(ctx).Infof("transform (%d removed, %d replaced): %d lines", res.Removals, res.Replacements, len(res.Lines))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
