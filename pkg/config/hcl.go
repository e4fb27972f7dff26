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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// envObject exposes the process environment to HCL as env.NAME
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}

// 📝 Parse parses the config from HCL. Environment variables are available
// as env.NAME.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclBundle struct {
		Name       string   `hcl:"name,label"`
		Type       string   `hcl:"type,optional"`
		SourceDir  string   `hcl:"source_dir,optional"`
		Files      []string `hcl:"files,optional"`
		Includes   []string `hcl:"includes,optional"`
		Excludes   []string `hcl:"excludes,optional"`
		OutputDir  string   `hcl:"output_dir,optional"`
		OutputFile string   `hcl:"output_file,optional"`
	}
	type hclConfig struct {
		WebappSourceDir string      `hcl:"webapp_source_dir,optional"`
		WebappTargetDir string      `hcl:"webapp_target_dir,optional"`
		Charset         string      `hcl:"charset,optional"`
		BufferSize      int         `hcl:"buffer_size,optional"`
		Debug           bool        `hcl:"debug,optional"`
		SkipMerge       bool        `hcl:"skip_merge,optional"`
		SkipMinify      bool        `hcl:"skip_minify,optional"`
		NoSuffix        bool        `hcl:"nosuffix,optional"`
		Suffix          string      `hcl:"suffix,optional"`
		LineBreak       *int        `hcl:"linebreak,optional"`
		Async           bool        `hcl:"async,optional"`
		Workers         int         `hcl:"workers,optional"`
		Bundles         []hclBundle `hcl:"bundle,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		WebappSourceDir: hclCfg.WebappSourceDir,
		WebappTargetDir: hclCfg.WebappTargetDir,
		Charset:         hclCfg.Charset,
		BufferSize:      hclCfg.BufferSize,
		Debug:           hclCfg.Debug,
		SkipMerge:       hclCfg.SkipMerge,
		SkipMinify:      hclCfg.SkipMinify,
		NoSuffix:        hclCfg.NoSuffix,
		Suffix:          hclCfg.Suffix,
		LineBreak:       hclCfg.LineBreak,
		Async:           hclCfg.Async,
		Workers:         hclCfg.Workers,
	}
	for _, b := range hclCfg.Bundles {
		cfg.Bundles = append(cfg.Bundles, Bundle{
			Name:       b.Name,
			Type:       b.Type,
			SourceDir:  b.SourceDir,
			Files:      b.Files,
			Includes:   b.Includes,
			Excludes:   b.Excludes,
			OutputDir:  b.OutputDir,
			OutputFile: b.OutputFile,
		})
	}

	return cfg, nil
}
