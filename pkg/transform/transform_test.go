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

package transform

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext     string
		want    Kind
		wantErr bool
	}{
		{ext: ".css", want: KindCSS},
		{ext: ".CSS", want: KindCSS},
		{ext: ".js", want: KindJS},
		{ext: ".mjs", want: KindJS},
		{ext: ".html", wantErr: true},
		{ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			m, err := ForExtension(tt.ext, Options{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no minifier for extension")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Kind())
		})
	}
}

func TestMinifierTransform(t *testing.T) {
	tests := []struct {
		name     string
		minifier *Minifier
		input    string
		check    func(t *testing.T, out string)
	}{
		{
			name:     "css",
			minifier: CSS(Options{}),
			input:    "a { margin : 0 ; }\n\n/* comment */\nb { padding : 0 }\n",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "a{margin:0}b{padding:0}", out)
			},
		},
		{
			name:     "css_line_break",
			minifier: CSS(Options{LineBreak: 1}),
			input:    "a { margin : 0 }\nb { padding : 0 }\n",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "a{margin:0}\nb{padding:0}\n", out)
			},
		},
		{
			name:     "js",
			minifier: JS(Options{}),
			input:    "// leading comment\nvar a = 1 ;\n\nvar b = 2 ;\n",
			check: func(t *testing.T, out string) {
				assert.NotContains(t, out, "leading comment")
				assert.Contains(t, out, "a=1")
				assert.Contains(t, out, "b=2")
			},
		},
		{
			name:     "js_ignores_line_break",
			minifier: JS(Options{LineBreak: 1}),
			input:    "var a = 1 ;",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "var a=1", out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "in")
			output := filepath.Join(dir, "out")
			require.NoError(t, os.WriteFile(input, []byte(tt.input), 0644))

			require.NoError(t, tt.minifier.Transform(testContext(t), input, output))

			content, err := os.ReadFile(output)
			require.NoError(t, err)
			tt.check(t, string(content))
		})
	}
}

func TestMinifierTransformErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.css")
	require.NoError(t, os.WriteFile(input, []byte("a{}"), 0644))

	t.Run("missing_input", func(t *testing.T) {
		err := CSS(Options{}).Transform(testContext(t), filepath.Join(dir, "nope.css"), filepath.Join(dir, "out.css"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening")
	})

	t.Run("unknown_charset", func(t *testing.T) {
		err := CSS(Options{Charset: "klingon-8"}).Transform(testContext(t), input, filepath.Join(dir, "out.css"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolving charset")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()
		err := CSS(Options{}).Transform(ctx, input, filepath.Join(dir, "out.css"))
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLineBreaker(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		chunks []string
		want   string
	}{
		{
			name:   "breaks_after_limit",
			limit:  6,
			chunks: []string{"a{x:0}b{y:0}c{z:0}"},
			want:   "a{x:0}\nb{y:0}\nc{z:0}\n",
		},
		{
			name:   "waits_for_closing_brace",
			limit:  3,
			chunks: []string{"abcdef{x}", "g{y}"},
			want:   "abcdef{x}\ng{y}\n",
		},
		{
			name:   "existing_newline_resets_column",
			limit:  10,
			chunks: []string{"a{x}\nb{y}"},
			want:   "a{x}\nb{y}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lb := &lineBreaker{w: &buf, limit: tt.limit}
			for _, c := range tt.chunks {
				n, err := lb.Write([]byte(c))
				require.NoError(t, err)
				assert.Equal(t, len(c), n)
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
