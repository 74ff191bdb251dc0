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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pathshift/cmd/pathshift/commands"
	"github.com/walteh/pathshift/cmd/pathshift/opts"
)

func main() {
	ctx := context.Background()

	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pathshift",
		Short: "Pull file paths out of logs and move the files into a new tree",
		Long: `pathshift reads log text, narrows it down by date, regex or phrase
removal, and relocates every remaining path under a destination root,
keeping the parent directory and file name of each source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			ctx := zerolog.DefaultContextLogger.WithContext(cmd.Context())
			cmd.SetContext(ctx)
			return initRootOpts(ctx, cmd, rootOpts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRegexCmd(rootOpts),
		commands.NewDatesCmd(rootOpts),
		commands.NewFilterCmd(rootOpts),
		commands.NewTransformCmd(rootOpts),
		commands.NewMoveCmd(rootOpts),
		commands.NewRunCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
		os.Exit(1)
	}
}
