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
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// pipelineModules are the libraries whose versions change minified output
var pipelineModules = []string{
	"github.com/tdewolff/minify/v2",
	"github.com/tdewolff/parse/v2",
	"golang.org/x/text",
}

// 📦 BuildInfo describes the binary and the minifier stack it was linked with
type BuildInfo struct {
	Version  string
	Revision string
	Dirty    bool
	Go       string
	Platform string
	Modules  []ModuleVersion // Pipeline libraries in pipelineModules order
}

// ModuleVersion is a dependency path and the version actually linked
type ModuleVersion struct {
	Path    string
	Version string
}

// ReadBuildInfo collects version data from the running binary
func ReadBuildInfo() BuildInfo {
	bi := BuildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		bi.Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			bi.Revision = s.Value
		case "vcs.modified":
			bi.Dirty = s.Value == "true"
		}
	}
	bi.Modules = linkedVersions(info.Deps)
	return bi
}

// linkedVersions picks the pipeline modules out of deps, following replace
// directives. Modules missing from deps are reported as "unknown".
func linkedVersions(deps []*debug.Module) []ModuleVersion {
	found := make(map[string]string, len(deps))
	for _, d := range deps {
		if d == nil {
			continue
		}
		v := d.Version
		if d.Replace != nil {
			v = d.Replace.Version
			if v == "" {
				v = d.Replace.Path
			}
		}
		found[d.Path] = v
	}

	out := make([]ModuleVersion, 0, len(pipelineModules))
	for _, path := range pipelineModules {
		v, ok := found[path]
		if !ok || v == "" {
			v = "unknown"
		}
		out = append(out, ModuleVersion{Path: path, Version: v})
	}
	return out
}

// String renders bi for the version command
func (bi BuildInfo) String() string {
	var b strings.Builder

	revision := bi.Revision
	if revision == "" {
		revision = "none"
	}
	if bi.Dirty {
		revision += " (modified)"
	}

	fmt.Fprintf(&b, "🗜️ minifyrc %s (%s, %s)\n", bi.Version, bi.Go, bi.Platform)
	fmt.Fprintf(&b, "revision: %s\n", revision)
	for _, m := range bi.Modules {
		fmt.Fprintf(&b, "  %-32s %s\n", m.Path, m.Version)
	}
	return b.String()
}
