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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/minifyrc/cmd/minifyrc/opts"
	"github.com/walteh/minifyrc/pkg/log"
	"github.com/walteh/minifyrc/pkg/operation"
	"github.com/walteh/minifyrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		async   bool
		workers int
		only    []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge and minify every configured bundle",
		Long: `Run processes the bundles in the config file.
For each bundle it will:
1. Resolve the source files
2. Merge them into one file
3. Minify the merged file
4. Report which artifacts changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("async") {
				cfg.Async = async
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			level := zerolog.WarnLevel
			if cfg.Debug {
				level = zerolog.DebugLevel
			}
			zlog := zerolog.Ctx(ctx).With().Str("command", "run").Logger().Level(level)
			ctx = zlog.WithContext(ctx)

			logger := log.NewWithZerolog(os.Stdout, zlog)
			rec := log.NewRecorder()
			events := log.Tee(logger, rec)
			tracker := status.New()

			tasks, err := cfg.Tasks(ctx, events, tracker, only...)
			if err != nil {
				return errors.Errorf("creating tasks: %w", err)
			}

			execs := make([]operation.Executor, 0, len(tasks))
			for _, t := range tasks {
				execs = append(execs, t)
			}

			formatter := status.NewDefaultFileFormatter()
			runner := operation.NewRunner(&zlog, cfg.Async, cfg.Workers).
				WithProgress(func(done, total int) {
					zlog.Debug().Msg(formatter.FormatProgress(done, total))
				})

			logger.Header(fmt.Sprintf("processing %d bundle(s) from %s", len(tasks), cfg.Location()))
			runErr := runner.Run(ctx, execs...)

			entries := tracker.Entries()
			if len(entries) > 0 {
				logger.LogNewline()
			}
			for _, e := range entries {
				zlog.Debug().Msg(formatter.FormatEntry(e, cfg.WebappTargetDir))
				logger.LogArtifact(ctx, log.ArtifactOperation{
					Path:       relPath(cfg.WebappTargetDir, e.Path),
					Kind:       string(e.Kind),
					Status:     e.Status.String(),
					Task:       e.Task,
					IsNew:      e.Status == status.StatusNew,
					IsModified: e.Status == status.StatusModified,
					IsRemoved:  e.Status == status.StatusDeleted,
					Size:       e.Size,
				})
			}

			counts := tracker.Counts()
			opts.UserLogger.LogStateChange(fmt.Sprintf("%d new, %d modified, %d unchanged, %d warning(s)",
				counts[status.StatusNew],
				counts[status.StatusModified],
				counts[status.StatusUnchanged],
				rec.Count(log.LevelWarn),
			))

			if runErr != nil {
				return errors.Errorf("running bundles: %w", runErr)
			}
			if n := rec.Count(log.LevelError); n > 0 {
				opts.UserLogger.LogValidation(false, fmt.Sprintf("%d bundle(s) reported errors", n), nil)
				return nil
			}

			logger.Success("All bundles processed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "process bundles concurrently")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "maximum concurrent bundles in async mode, 0 means no limit")
	cmd.Flags().StringSliceVar(&only, "only", nil, "only process the named bundles")

	return cmd
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
