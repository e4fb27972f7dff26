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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	t.Setenv("MINIFYRC_TEST_OUT", "/srv/www")

	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "bundles_as_blocks",
			config: `
webapp_source_dir = "web"
webapp_target_dir = "${env.MINIFYRC_TEST_OUT}/assets"
nosuffix          = true
linebreak         = 80
workers           = 4

bundle "styles" {
  type        = "css"
  files       = ["reset.css", "base.css"]
  includes    = ["components/**/*.css"]
  output_file = "site.css"
}

bundle "scripts" {
  source_dir  = "scripts"
  output_dir  = "dist"
  excludes    = ["**/*.test.js"]
  output_file = "app.js"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "web", cfg.WebappSourceDir)
				assert.Equal(t, "/srv/www/assets", cfg.WebappTargetDir, "env.NAME should resolve")
				assert.True(t, cfg.NoSuffix)
				require.NotNil(t, cfg.LineBreak)
				assert.Equal(t, 80, *cfg.LineBreak)
				assert.Equal(t, 4, cfg.Workers)

				require.Len(t, cfg.Bundles, 2)
				assert.Equal(t, "styles", cfg.Bundles[0].Name, "block label should become the name")
				assert.Equal(t, "css", cfg.Bundles[0].Type)
				assert.Equal(t, []string{"reset.css", "base.css"}, cfg.Bundles[0].Files)
				assert.Equal(t, []string{"components/**/*.css"}, cfg.Bundles[0].Includes)
				assert.Equal(t, "scripts", cfg.Bundles[1].Name)
				assert.Equal(t, "scripts", cfg.Bundles[1].SourceDir)
				assert.Equal(t, "dist", cfg.Bundles[1].OutputDir)
				assert.Equal(t, []string{"**/*.test.js"}, cfg.Bundles[1].Excludes)
			},
		},
		{
			name: "linebreak_omitted",
			config: `
bundle "a" {
  type = "js"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.LineBreak)
				require.Len(t, cfg.Bundles, 1)
			},
		},
		{
			name:        "invalid_syntax",
			config:      `bundle "a" {`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_attribute",
			config:      `colour = "red"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name: "bundle_without_label",
			config: `
bundle {
  type = "js"
}
`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&HCLParser{}).Parse(context.Background(), []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
