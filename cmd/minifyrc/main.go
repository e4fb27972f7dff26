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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/minifyrc/cmd/minifyrc/commands"
	"github.com/walteh/minifyrc/cmd/minifyrc/opts"
	"github.com/walteh/minifyrc/pkg/log"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	logger := setupLogging()
	ctx := logger.WithContext(context.Background())

	// Create user logger
	userLogger := log.NewUserLogger(ctx)

	rootOpts := &opts.RootOpts{UserLogger: userLogger}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "minifyrc",
		Short: "Merge and minify CSS and JavaScript bundles",
		Long: `minifyrc concatenates groups of stylesheets or scripts into one file
per bundle and writes a minified copy next to it, as described by a
.minifyrc.yaml, .minifyrc.hcl or .minifyrc.json file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rootOpts.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, rootOpts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewValidateCmd(rootOpts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
