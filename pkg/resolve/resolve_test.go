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

package resolve_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/minifyrc/pkg/log"
	"github.com/walteh/minifyrc/pkg/resolve"
)

// 🧪 writeFiles creates each relative path under dir with its name as content
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	}
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func rel(t *testing.T, base string, files resolve.SourceFileSet) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(base, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		files     []string // created on disk
		opts      resolve.Options
		want      []string
		wantWarns int
	}{
		{
			name: "nothing_configured",
			opts: resolve.Options{MergedName: "bundle.js"},
			want: []string{},
		},
		{
			name:  "explicit_order_is_kept",
			files: []string{"a.js", "b.js", "c.js"},
			opts: resolve.Options{
				Files:      []string{"c.js", "a.js", "b.js"},
				MergedName: "bundle.js",
			},
			want: []string{"c.js", "a.js", "b.js"},
		},
		{
			name:  "missing_explicit_file_is_skipped",
			files: []string{"a.js"},
			opts: resolve.Options{
				Files:      []string{"foo.js", "a.js"},
				MergedName: "bundle.js",
			},
			want:      []string{"a.js"},
			wantWarns: 1,
		},
		{
			name:  "explicit_before_sorted_patterns",
			files: []string{"lib/zeta.js", "lib/Alpha.js", "lib/alpha.js", "lib/beta.js", "main.js"},
			opts: resolve.Options{
				Files:      []string{"main.js", "lib/beta.js"},
				Includes:   []string{"**/*.js"},
				MergedName: "bundle.js",
			},
			want: []string{"main.js", "lib/beta.js", "lib/Alpha.js", "lib/alpha.js", "lib/zeta.js"},
		},
		{
			name:  "excludes_and_defaults",
			files: []string{"a.css", "vendor/b.css", ".git/c.css", "d.css~", "e.css"},
			opts: resolve.Options{
				Includes:   []string{"**/*.css", "**/*.css~"},
				Excludes:   []string{"vendor/"},
				MergedName: "style.css",
			},
			want: []string{"a.css", "e.css"},
		},
		{
			name:  "collision_warns_but_includes",
			files: []string{"Bundle.js", "a.js"},
			opts: resolve.Options{
				Files:      []string{"Bundle.js", "a.js"},
				MergedName: "bundle.js",
			},
			want:      []string{"Bundle.js", "a.js"},
			wantWarns: 1,
		},
		{
			name:  "invalid_pattern_warns",
			files: []string{"a.js"},
			opts: resolve.Options{
				Includes:   []string{"[", "*.js"},
				MergedName: "bundle.js",
			},
			want:      []string{"a.js"},
			wantWarns: 1,
		},
		{
			name:  "directories_are_not_files",
			files: []string{"dir.js/inner.txt", "a.js"},
			opts: resolve.Options{
				Includes:   []string{"*.js"},
				MergedName: "bundle.js",
			},
			want: []string{"a.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			rec := log.NewRecorder()
			opts := tt.opts
			opts.BaseDir = dir

			got := resolve.Resolve(testContext(t), opts, rec)

			assert.Equal(t, tt.want, rel(t, dir, got))
			assert.Equal(t, tt.wantWarns, rec.Count(log.LevelWarn), "warnings: %+v", rec.Filter(log.LevelWarn))
			assert.Equal(t, 0, rec.Count(log.LevelError))
		})
	}
}

func TestResolveMissingFileWarning(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.js")

	rec := log.NewRecorder()
	got := resolve.Resolve(testContext(t), resolve.Options{
		BaseDir:    dir,
		Files:      []string{"foo.js", "a.js"},
		MergedName: "bundle.js",
	}, rec)

	require.Len(t, got, 1)
	warns := rec.Filter(log.LevelWarn)
	require.Len(t, warns, 1)
	assert.Equal(t, "Source file [foo.js] was not included because it does not exist.", warns[0].Message)
	assert.Equal(t, filepath.Join(dir, "foo.js"), warns[0].File)

	debugs := rec.Filter(log.LevelDebug)
	require.Len(t, debugs, 1)
	assert.Equal(t, "Source file [a.js] added.", debugs[0].Message)
}

func TestResolveNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.js", "b.js")

	got := resolve.Resolve(testContext(t), resolve.Options{
		BaseDir:  dir,
		Files:    []string{"b.js", "b.js", "./a.js"},
		Includes: []string{"*.js", "**/*.js"},
	}, log.Nop())

	assert.Equal(t, []string{"b.js", "a.js"}, rel(t, dir, got))
	for _, f := range got {
		assert.True(t, filepath.IsAbs(f), "paths should be absolute: %s", f)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	names := []string{"m.js", "B.js", "a.js", "c/ab.js", "c/a.js", "Z.js", "b.js"}
	writeFiles(t, dir, names...)

	opts := resolve.Options{BaseDir: dir, Includes: []string{"**/*.js"}}
	first := resolve.Resolve(testContext(t), opts, log.Nop())
	second := resolve.Resolve(testContext(t), opts, log.Nop())

	assert.Equal(t, first, second)
	assert.True(t, slices.IsSortedFunc([]string(first), resolve.CompareFilenames))
	assert.Equal(t, []string{"a.js", "c/a.js", "c/ab.js", "B.js", "b.js", "m.js", "Z.js"}, rel(t, dir, first))
}
