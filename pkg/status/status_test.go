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
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tests := []struct {
		name   string
		before *string // nil means the file doesn't exist at snapshot time
		after  *string // nil means the file doesn't exist at record time
		want   FileStatus
		stored bool
	}{
		{name: "new_file", after: ptr("a"), want: StatusNew, stored: true},
		{name: "modified_file", before: ptr("a"), after: ptr("b"), want: StatusModified, stored: true},
		{name: "unchanged_file", before: ptr("a"), after: ptr("a"), want: StatusUnchanged, stored: true},
		{name: "deleted_file", before: ptr("a"), want: StatusDeleted, stored: true},
		{name: "never_existed", want: StatusUnknown, stored: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := filepath.Join(t.TempDir(), "bundle.js")
			tracker := New()

			if tt.before != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.before), 0644))
			}
			require.NoError(t, tracker.Snapshot(ctx, path))

			if tt.after != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.after), 0644))
			} else {
				os.Remove(path)
			}

			entry, err := tracker.Record(ctx, path, KindMerged, "scripts")
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Status)
			assert.Equal(t, "scripts", entry.Task)

			if tt.stored {
				require.Len(t, tracker.Entries(), 1)
				assert.Equal(t, entry, tracker.Entries()[0])
			} else {
				assert.Empty(t, tracker.Entries())
			}
		})
	}
}

func TestTrackerRecordWithoutSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(path, []byte("a{}"), 0644))

	entry, err := New().Record(context.Background(), path, KindMinified, "")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, entry.Status)
	assert.Equal(t, int64(3), entry.Size)
	assert.Len(t, entry.Checksum, 64)
}

func TestTrackerFirstSnapshotWins(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bundle.js")
	tracker := New()

	require.NoError(t, tracker.Snapshot(ctx, path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, tracker.Snapshot(ctx, path))

	entry, err := tracker.Record(ctx, path, KindMerged, "")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, entry.Status, "the second snapshot should not replace the first")
}

func TestTrackerConcurrentUse(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tracker := New()

	var wg sync.WaitGroup
	for _, name := range []string{"a.js", "b.js", "c.css", "d.css"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			path := filepath.Join(dir, name)
			assert.NoError(t, tracker.Snapshot(ctx, path))
			assert.NoError(t, os.WriteFile(path, []byte(name), 0644))
			_, err := tracker.Record(ctx, path, KindMerged, name)
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	entries := tracker.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, filepath.Join(dir, "a.js"), entries[0].Path, "entries should be sorted by path")
	assert.Equal(t, map[FileStatus]int{StatusNew: 4}, tracker.Counts())
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "deleted", StatusDeleted.String())
	assert.Equal(t, "unknown", FileStatus(42).String())
}

func ptr(s string) *string { return &s }
