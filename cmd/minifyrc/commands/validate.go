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
	"github.com/walteh/minifyrc/cmd/minifyrc/opts"
	"github.com/walteh/minifyrc/pkg/log"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the config file without processing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd.Context())
			if err != nil {
				opts.UserLogger.LogValidation(false, "Config is invalid", err)
				return err
			}

			for _, b := range cfg.Bundles {
				opts.UserLogger.LogChange(log.Change{
					Type:        log.ChangeUnchanged,
					Path:        b.OutputFile,
					Description: fmt.Sprintf("%s bundle %q: %d file(s), %d include(s)", b.Type, b.Name, len(b.Files), len(b.Includes)),
				})
			}
			opts.UserLogger.LogValidation(true, fmt.Sprintf("Config %s is valid: %s", cfg.Location(), cfg), nil)
			return nil
		},
	}

	return cmd
}
