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

// Package resolve turns explicit file names and include/exclude patterns
// into the ordered list of source files a bundle is built from.
package resolve

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/minifyrc/pkg/log"
)

// 📄 SourceFileSet is an ordered list of absolute paths without duplicates.
// Order drives merge output order.
type SourceFileSet []string

// Contains reports whether path is already part of the set
func (s SourceFileSet) Contains(path string) bool {
	return slices.Contains(s, path)
}

// 🔧 Options describes where and what to resolve
type Options struct {
	BaseDir    string   // Directory every name and pattern is relative to
	Files      []string // Explicit file names, kept in the given order
	Includes   []string // Glob patterns, matches sorted by CompareFilenames
	Excludes   []string // Glob patterns removed from the include matches
	MergedName string   // Final merged file name, used for collision warnings
}

// 🔍 Resolve builds the source file set. Missing files and bad patterns are
// reported on events and skipped; resolution itself never fails.
func Resolve(ctx context.Context, opts Options, events log.Events) SourceFileSet {
	logger := zerolog.Ctx(ctx)

	baseDir, err := filepath.Abs(opts.BaseDir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", opts.BaseDir).Msg("resolving absolute base dir")
		baseDir = filepath.Clean(opts.BaseDir)
	}

	var files SourceFileSet
	for _, name := range opts.Files {
		files = addSourceFile(ctx, files, filepath.Join(baseDir, filepath.FromSlash(name)), opts.MergedName, events)
	}

	for _, match := range Match(ctx, baseDir, opts.Includes, opts.Excludes, events) {
		if files.Contains(match) {
			continue
		}
		files = addSourceFile(ctx, files, match, opts.MergedName, events)
	}

	logger.Debug().Str("dir", baseDir).Int("files", len(files)).Msg("resolved source files")
	return files
}

// 📄 addSourceFile appends path when it exists
func addSourceFile(ctx context.Context, files SourceFileSet, path, mergedName string, events log.Events) SourceFileSet {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		log.Emitf(ctx, events, log.LevelWarn, path, "Source file [%s] was not included because it does not exist.", name)
		return files
	}

	if files.Contains(path) {
		log.Emitf(ctx, events, log.LevelDebug, path, "Source file [%s] already added.", name)
		return files
	}

	if mergedName != "" && strings.EqualFold(mergedName, name) {
		log.Emitf(ctx, events, log.LevelWarn, path, "Source file [%s] has the same name as the final file.", name)
	}

	log.Emitf(ctx, events, log.LevelDebug, path, "Source file [%s] added.", name)
	return append(files, path)
}

// 🎯 Match returns the absolute paths of regular files under baseDir matching
// any include pattern and none of the exclude or default exclude patterns,
// sorted with CompareFilenames.
func Match(ctx context.Context, baseDir string, includes, excludes []string, events log.Events) []string {
	if len(includes) == 0 {
		return nil
	}

	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(baseDir)

	excluded := make([]string, 0, len(excludes)+len(DefaultExcludes))
	for _, pattern := range excludes {
		excluded = append(excluded, normalizePattern(pattern))
	}
	excluded = append(excluded, DefaultExcludes...)

	seen := map[string]bool{}
	var matches []string
	for _, raw := range includes {
		pattern := normalizePattern(raw)
		if !doublestar.ValidatePattern(pattern) {
			log.Emitf(ctx, events, log.LevelWarn, "", "Include pattern [%s] is not a valid glob and was ignored.", raw)
			continue
		}

		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			log.Emitf(ctx, events, log.LevelWarn, "", "Include pattern [%s] could not be evaluated: %v", raw, err)
			continue
		}

		for _, rel := range found {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			if isExcluded(ctx, rel, excluded) {
				logger.Debug().Str("file", rel).Msg("file excluded by pattern")
				continue
			}

			info, err := fs.Stat(fsys, rel)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			matches = append(matches, filepath.Join(baseDir, filepath.FromSlash(rel)))
		}
	}

	slices.SortStableFunc(matches, CompareFilenames)
	return matches
}

// 🔍 isExcluded checks rel against every exclude pattern
func isExcluded(ctx context.Context, rel string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// normalizePattern converts directory-scanner conventions to doublestar: a
// trailing slash means everything below that directory.
func normalizePattern(pattern string) string {
	pattern = strings.TrimSpace(filepath.ToSlash(pattern))
	pattern = strings.TrimPrefix(pattern, "./")
	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}
	return pattern
}
