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

// Package merge concatenates source files into a single artifact.
package merge

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/minifyrc/pkg/charset"
	"github.com/walteh/minifyrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultBufferSize is used when Options.BufferSize is not positive
const DefaultBufferSize = 4096

// 🔧 Options describes one merge
type Options struct {
	Files       []string // Ordered source files
	Destination string   // Merged file path; empty means nothing to do
	Charset     string   // Encoding used to read and write, UTF-8 when empty
	BufferSize  int      // Copy buffer size in bytes
	Debug       bool     // Show full paths in events
}

// 🔗 Merge writes the concatenation of opts.Files to opts.Destination,
// replacing any previous content. On failure the partial destination is
// removed and the error returned.
func Merge(ctx context.Context, opts Options, events log.Events) (err error) {
	if opts.Destination == "" {
		return nil
	}

	logger := zerolog.Ctx(ctx)

	enc, err := charset.Lookup(opts.Charset)
	if err != nil {
		return errors.Errorf("resolving charset: %w", err)
	}

	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}

	out, err := os.Create(opts.Destination)
	if err != nil {
		log.EmitErr(ctx, events, opts.Destination, err, "An error has occurred while concatenating files")
		return errors.Errorf("creating merged file: %w", err)
	}

	seq := NewSequenceReader(ctx, opts.Files, events, opts.Debug)
	w := charset.NewWriter(out, enc)

	defer func() {
		if cerr := seq.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing merged file: %w", cerr)
		}
		if err != nil {
			log.EmitErr(ctx, events, opts.Destination, err, "An error has occurred while concatenating files")
			if rerr := os.Remove(opts.Destination); rerr != nil && !os.IsNotExist(rerr) {
				logger.Debug().Err(rerr).Str("file", opts.Destination).Msg("removing partial merged file")
			}
		}
	}()

	name := filepath.Base(opts.Destination)
	if opts.Debug {
		name = opts.Destination
	}
	log.Emitf(ctx, events, log.LevelInfo, opts.Destination, "Creating merged file [%s].", name)

	// wrapping hides ReaderFrom/WriterTo so the configured buffer is used
	buf := make([]byte, size)
	written, err := io.CopyBuffer(struct{ io.Writer }{w}, struct{ io.Reader }{charset.NewReader(seq, enc)}, buf)
	if err != nil {
		return errors.Errorf("concatenating files: %w", err)
	}
	if err := w.Close(); err != nil {
		return errors.Errorf("flushing merged file: %w", err)
	}

	logger.Debug().
		Str("file", opts.Destination).
		Int("sources", len(opts.Files)).
		Int64("bytes", written).
		Msg("merged files")

	return nil
}
