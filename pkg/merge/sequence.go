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

package merge

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/walteh/minifyrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🔗 SequenceReader reads a list of files back to back as one stream. Each
// file is opened only once the previous one is exhausted, and closed as soon
// as it is. It is not restartable.
type SequenceReader struct {
	ctx    context.Context
	files  []string
	next   int
	cur    *os.File
	events log.Events
	debug  bool
}

// NewSequenceReader creates a reader over files, in order
func NewSequenceReader(ctx context.Context, files []string, events log.Events, debug bool) *SequenceReader {
	return &SequenceReader{
		ctx:    ctx,
		files:  files,
		events: events,
		debug:  debug,
	}
}

// Read implements io.Reader
func (s *SequenceReader) Read(p []byte) (int, error) {
	for {
		if s.cur == nil {
			if s.next >= len(s.files) {
				return 0, io.EOF
			}
			if err := s.ctx.Err(); err != nil {
				return 0, errors.Errorf("reading sources: %w", err)
			}
			if err := s.open(s.files[s.next]); err != nil {
				return 0, err
			}
			s.next++
		}

		n, err := s.cur.Read(p)
		if err == io.EOF {
			if cerr := s.closeCurrent(); cerr != nil {
				return n, cerr
			}
			if n > 0 {
				return n, nil
			}
			continue
		}
		if err != nil {
			return n, errors.Errorf("reading %s: %w", s.cur.Name(), err)
		}
		return n, nil
	}
}

func (s *SequenceReader) open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening %s: %w", path, err)
	}

	name := filepath.Base(path)
	if s.debug {
		name = path
	}
	log.Emitf(s.ctx, s.events, log.LevelDebug, path, "Processing source file [%s].", name)

	s.cur = f
	return nil
}

func (s *SequenceReader) closeCurrent() error {
	f := s.cur
	s.cur = nil
	if err := f.Close(); err != nil {
		return errors.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}

// Close releases the file currently open, if any. Files not yet reached are
// never opened.
func (s *SequenceReader) Close() error {
	s.next = len(s.files)
	if s.cur == nil {
		return nil
	}
	return s.closeCurrent()
}
