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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the current state of a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist before the run
	StatusModified             // File existed but content differs
	StatusUnchanged            // File existed and content matches
	StatusDeleted              // File existed and is gone
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📦 Kind says which pipeline step produced an artifact
type Kind string

const (
	KindMerged   Kind = "merged"
	KindMinified Kind = "minified"
)

// 📄 Entry is the recorded outcome for one artifact
type Entry struct {
	Path     string     // Absolute path of the artifact
	Kind     Kind       // Step that produced it
	Task     string     // Owning task
	Status   FileStatus // Change relative to the snapshot
	Size     int64      // Size in bytes after the run
	Checksum string     // SHA-256 of the content after the run
}

type snapshot struct {
	exists   bool
	checksum string
}

// 🔧 Tracker compares artifacts before and after a run. It is safe for
// concurrent use by independent tasks.
type Tracker struct {
	mu      sync.Mutex
	before  map[string]snapshot
	entries map[string]Entry
}

// 🏭 New creates an empty tracker
func New() *Tracker {
	return &Tracker{
		before:  make(map[string]snapshot),
		entries: make(map[string]Entry),
	}
}

// 🔍 checksum returns the SHA-256 of the file at path, and false when the
// file doesn't exist
func checksum(path string) (string, int64, bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	hash := sha256.New()
	n, err := io.Copy(hash, f)
	if err != nil {
		return "", 0, false, errors.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), n, true, nil
}

// 📸 Snapshot remembers the current content of path. Taking a second
// snapshot of the same path keeps the first one.
func (t *Tracker) Snapshot(ctx context.Context, path string) error {
	path = filepath.Clean(path)

	t.mu.Lock()
	_, seen := t.before[path]
	t.mu.Unlock()
	if seen {
		return nil
	}

	sum, _, exists, err := checksum(path)
	if err != nil {
		return errors.Errorf("taking snapshot: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, seen := t.before[path]; !seen {
		t.before[path] = snapshot{exists: exists, checksum: sum}
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Bool("exists", exists).Msg("took artifact snapshot")
	return nil
}

// 📝 Record classifies path against its snapshot and stores the result. A
// path that exists neither before nor after is reported as unknown and not
// stored.
func (t *Tracker) Record(ctx context.Context, path string, kind Kind, task string) (Entry, error) {
	path = filepath.Clean(path)

	sum, size, exists, err := checksum(path)
	if err != nil {
		return Entry{}, errors.Errorf("recording artifact: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, hadSnapshot := t.before[path]
	entry := Entry{Path: path, Kind: kind, Task: task, Size: size, Checksum: sum}

	switch {
	case !exists && prev.exists:
		entry.Status = StatusDeleted
	case !exists:
		return entry, nil
	case !hadSnapshot || !prev.exists:
		entry.Status = StatusNew
	case prev.checksum == sum:
		entry.Status = StatusUnchanged
	default:
		entry.Status = StatusModified
	}

	t.entries[path] = entry
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("kind", string(kind)).
		Str("status", entry.Status.String()).
		Msg("recorded artifact")
	return entry, nil
}

// Entries returns every recorded artifact, sorted by path
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Counts tallies recorded artifacts by status
func (t *Tracker) Counts() map[FileStatus]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[FileStatus]int)
	for _, e := range t.entries {
		counts[e.Status]++
	}
	return counts
}
