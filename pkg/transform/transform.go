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

// Package transform holds the minification step. The pipeline only depends
// on the Transformer interface; Minifier is the stock implementation.
package transform

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/walteh/minifyrc/pkg/charset"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Transformer rewrites input into output
type Transformer interface {
	Transform(ctx context.Context, input, output string) error
}

// Func adapts a plain function to a Transformer
type Func func(ctx context.Context, input, output string) error

// Transform calls f
func (f Func) Transform(ctx context.Context, input, output string) error {
	return f(ctx, input, output)
}

// 📚 Kind is the content type a transformer handles
type Kind string

const (
	KindCSS Kind = "CSS"
	KindJS  Kind = "JavaScript"
)

const (
	mediaCSS = "text/css"
	mediaJS  = "application/javascript"
)

// 🔧 Options are shared by every minifier
type Options struct {
	Charset   string // Source and output encoding
	LineBreak int    // Break stylesheet output after a rule once this column is passed; <= 0 disables
	Debug     bool
}

// 🗜️ Minifier minifies one content type
type Minifier struct {
	m         *minify.M
	kind      Kind
	mediatype string
	opts      Options
}

var _ Transformer = (*Minifier)(nil)

func newMinifier(kind Kind, opts Options) *Minifier {
	m := minify.New()
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc(mediaJS, js.Minify)

	mediatype := mediaJS
	if kind == KindCSS {
		mediatype = mediaCSS
	}
	return &Minifier{m: m, kind: kind, mediatype: mediatype, opts: opts}
}

// 🏭 CSS creates a stylesheet minifier
func CSS(opts Options) *Minifier {
	return newMinifier(KindCSS, opts)
}

// 🏭 JS creates a script minifier
func JS(opts Options) *Minifier {
	return newMinifier(KindJS, opts)
}

// 🎯 ForExtension picks the minifier for a file extension such as ".css"
func ForExtension(ext string, opts Options) (*Minifier, error) {
	switch strings.ToLower(ext) {
	case ".css":
		return CSS(opts), nil
	case ".js", ".mjs", ".cjs":
		return JS(opts), nil
	default:
		return nil, errors.Errorf("no minifier for extension %q", ext)
	}
}

// Kind returns the content type handled by m
func (m *Minifier) Kind() Kind {
	return m.kind
}

// 🏃 Transform minifies input into output, overwriting output. A failed
// transform leaves no output file behind.
func (m *Minifier) Transform(ctx context.Context, input, output string) (err error) {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("minifying %s: %w", input, err)
	}

	logger := zerolog.Ctx(ctx)

	enc, err := charset.Lookup(m.opts.Charset)
	if err != nil {
		return errors.Errorf("resolving charset: %w", err)
	}

	in, err := os.Open(input)
	if err != nil {
		return errors.Errorf("opening %s: %w", input, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return errors.Errorf("creating %s: %w", output, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", output, cerr)
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	w := charset.NewWriter(out, enc)
	var dst io.Writer = w
	if m.opts.LineBreak > 0 {
		if m.kind == KindCSS {
			dst = &lineBreaker{w: w, limit: m.opts.LineBreak}
		} else {
			logger.Debug().Int("linebreak", m.opts.LineBreak).Msg("line break column is ignored for scripts")
		}
	}

	if err := m.m.Minify(m.mediatype, dst, charset.NewReader(in, enc)); err != nil {
		return errors.Errorf("minifying %s: %w", input, err)
	}
	if err := w.Close(); err != nil {
		return errors.Errorf("flushing %s: %w", output, err)
	}

	logger.Debug().Str("input", input).Str("output", output).Str("kind", string(m.kind)).Msg("minified file")
	return nil
}

// lineBreaker inserts a newline after the first '}' past the column limit
type lineBreaker struct {
	w     io.Writer
	limit int
	col   int
}

func (lb *lineBreaker) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b == '\n' {
			lb.col = 0
			continue
		}
		lb.col++
		if b != '}' || lb.col < lb.limit {
			continue
		}
		if _, err := lb.w.Write(p[start : i+1]); err != nil {
			return start, err
		}
		if _, err := lb.w.Write([]byte{'\n'}); err != nil {
			return i + 1, err
		}
		start = i + 1
		lb.col = 0
	}
	if start < len(p) {
		if _, err := lb.w.Write(p[start:]); err != nil {
			return start, err
		}
	}
	return len(p), nil
}
