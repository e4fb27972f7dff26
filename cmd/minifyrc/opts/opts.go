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

package opts

import (
	"context"
	"os"

	"github.com/walteh/minifyrc/pkg/config"
	"github.com/walteh/minifyrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultConfigFiles are tried in order when no config file is given
var DefaultConfigFiles = []string{
	".minifyrc.yaml",
	".minifyrc.yml",
	".minifyrc.hcl",
	".minifyrc.json",
}

// 🔧 RootOpts holds the shared state of every command
type RootOpts struct {
	ConfigFile string // Set by the --config flag
	Debug      bool   // Set by the --debug flag
	UserLogger *log.UserLogger
}

// ConfigPath returns the config file to load
func (o *RootOpts) ConfigPath() (string, error) {
	if o.ConfigFile != "" {
		return o.ConfigFile, nil
	}
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", errors.Errorf("no config file found, tried %v", DefaultConfigFiles)
}

// 🎯 LoadConfig loads and validates the config, applying the --debug flag
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	path, err := o.ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if o.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}
