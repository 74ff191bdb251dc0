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
	"github.com/walteh/pathshift/pkg/logdate"
	"gitlab.com/tozd/go/errors"
)

// NewDatesCmd creates the dates command
func NewDatesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates [files...]",
		Short: "List the dates log lines start with",
		Long: `Dates looks at the first ten characters of every line and lists each
calendar date found, oldest first. Recognised forms are DD.MM.YYYY,
DD-MM-YYYY, DD.MM.YY and DD-MM-YY. Any listed date can be passed to
"filter --date" or "run --date".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := readInput(ctx, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			dates, err := logdate.Dates(ctx, input)
			if err != nil {
				return errors.Errorf("indexing dates: %w", err)
			}

			items := make([]pterm.BulletListItem, 0, len(dates))
			for _, d := range dates {
				items = append(items, pterm.BulletListItem{Level: 0, Text: d})
			}
			list, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return errors.Errorf("rendering dates: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), list)
			return nil
		},
	}

	return cmd
}
