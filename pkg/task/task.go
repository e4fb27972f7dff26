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

package task

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/minifyrc/pkg/log"
	"github.com/walteh/minifyrc/pkg/merge"
	"github.com/walteh/minifyrc/pkg/naming"
	"github.com/walteh/minifyrc/pkg/resolve"
	"github.com/walteh/minifyrc/pkg/status"
	"github.com/walteh/minifyrc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// Events is the sink every task reports to
type Events = log.Events

// 🔧 Options are the constructor inputs of a task. Paths are joined as
// SourceRootDir/InputDir and TargetRootDir/OutputDir.
type Options struct {
	Name        string                // Task name used to tag events
	Events      Events                // Event sink, events are dropped when nil
	Transformer transform.Transformer // Required unless SkipMinify
	Tracker     *status.Tracker       // Optional artifact tracker

	BufferSize int
	Debug      bool
	SkipMerge  bool
	SkipMinify bool

	SourceRootDir string
	InputDir      string
	Files         []string // Explicit source names, relative to the input directory
	Includes      []string // Include globs
	Excludes      []string // Exclude globs

	TargetRootDir  string
	OutputDir      string
	OutputFilename string // Merged file name
	Suffix         string // Inserted before the extension of transformed files
	NoSuffix       bool   // Collapse transformed files onto their unsuffixed name

	Charset   string
	LineBreak int
}

// 📋 Config is the resolved, read-only configuration of a task
type Config struct {
	BufferSize     int
	Debug          bool
	SkipMerge      bool
	SkipMinify     bool
	Charset        string
	LineBreak      int
	NoSuffix       bool
	OutputDir      string
	MergedFilename string
	Suffix         string
}

// 🏗️ Task merges and transforms one group of source files
type Task struct {
	name        string
	config      Config
	files       resolve.SourceFileSet
	declared    bool
	events      Events
	transformer transform.Transformer
	tracker     *status.Tracker
}

// 🏭 New validates opts and resolves the source files. The file set is fixed
// from here on; later changes on disk are only seen by a new task.
func New(ctx context.Context, opts Options) (*Task, error) {
	if opts.OutputFilename == "" {
		return nil, errors.New("output file name is required")
	}
	if opts.Suffix == "" {
		return nil, errors.New("suffix is required")
	}
	if opts.Transformer == nil && (opts.SkipMerge || !opts.SkipMinify) {
		return nil, errors.New("transformer is required unless minify is skipped")
	}

	events := log.Named(opts.Events, opts.Name)

	cfg := Config{
		BufferSize:     opts.BufferSize,
		Debug:          opts.Debug,
		SkipMerge:      opts.SkipMerge,
		SkipMinify:     opts.SkipMinify,
		Charset:        opts.Charset,
		LineBreak:      opts.LineBreak,
		NoSuffix:       opts.NoSuffix,
		OutputDir:      filepath.Join(opts.TargetRootDir, opts.OutputDir),
		MergedFilename: opts.OutputFilename,
		Suffix:         opts.Suffix,
	}

	files := resolve.Resolve(ctx, resolve.Options{
		BaseDir:    filepath.Join(opts.SourceRootDir, opts.InputDir),
		Files:      opts.Files,
		Includes:   opts.Includes,
		Excludes:   opts.Excludes,
		MergedName: opts.OutputFilename,
	}, events)

	zerolog.Ctx(ctx).Debug().
		Str("task", opts.Name).
		Int("files", len(files)).
		Str("output_dir", cfg.OutputDir).
		Msg("task created")

	return &Task{
		name:        opts.Name,
		config:      cfg,
		files:       files,
		declared:    len(opts.Files) > 0 || len(opts.Includes) > 0,
		events:      events,
		transformer: opts.Transformer,
		tracker:     opts.Tracker,
	}, nil
}

// Name returns the task name
func (t *Task) Name() string {
	return t.name
}

// Config returns the resolved configuration
func (t *Task) Config() Config {
	return t.config
}

// Files returns the resolved source files in processing order
func (t *Task) Files() []string {
	return slices.Clone(t.files)
}

// FileType returns "CSS" for a merged file with a .css extension and
// "JavaScript" otherwise
func (t *Task) FileType() string {
	if strings.EqualFold(naming.Extension(t.config.MergedFilename), ".css") {
		return string(transform.KindCSS)
	}
	return string(transform.KindJS)
}

// 🧭 Plan reports which branch Execute takes
func (t *Task) Plan() Mode {
	switch {
	case len(t.files) == 0 && !t.declared:
		return ModeNoOp
	case len(t.files) == 0:
		return ModeNoValidSources
	case t.config.SkipMerge:
		return ModePerFileTransform
	case t.config.SkipMinify:
		return ModeMergeOnly
	default:
		return ModeMergeAndTransform
	}
}

// MergedPath is where the merged artifact is written
func (t *Task) MergedPath() string {
	return filepath.Join(t.config.OutputDir, t.config.MergedFilename)
}

// TransformedPath is where the transformed merged artifact is written
func (t *Task) TransformedPath() string {
	return filepath.Join(t.config.OutputDir, naming.Suffixed(t.config.MergedFilename, t.config.Suffix))
}

type artifact struct {
	path string
	kind status.Kind
}

// artifacts lists the files left in the output directory by a successful run
func (t *Task) artifacts(mode Mode) []artifact {
	switch mode {
	case ModePerFileTransform:
		out := make([]artifact, 0, len(t.files))
		for _, f := range t.files {
			name := filepath.Base(f)
			if !t.config.NoSuffix {
				name = naming.Suffixed(name, t.config.Suffix)
			}
			out = append(out, artifact{path: filepath.Join(t.config.OutputDir, name), kind: status.KindMinified})
		}
		return out
	case ModeMergeOnly:
		return []artifact{{path: t.MergedPath(), kind: status.KindMerged}}
	case ModeMergeAndTransform:
		if t.config.NoSuffix {
			return []artifact{{path: t.MergedPath(), kind: status.KindMinified}}
		}
		return []artifact{
			{path: t.MergedPath(), kind: status.KindMerged},
			{path: t.TransformedPath(), kind: status.KindMinified},
		}
	default:
		return nil
	}
}

// 🏃 Execute runs the task. Missing sources are reported as an error event
// and are not an error; I/O and transform failures are returned.
func (t *Task) Execute(ctx context.Context) error {
	mode := t.Plan()
	logger := zerolog.Ctx(ctx).With().Str("task", t.name).Str("mode", mode.String()).Logger()
	ctx = logger.WithContext(ctx)

	switch mode {
	case ModeNoOp:
		log.Emitf(ctx, t.events, log.LevelDebug, "", "No source files configured.")
		return nil
	case ModeNoValidSources:
		log.Emitf(ctx, t.events, log.LevelError, "", "No valid %s source files found to process.", t.FileType())
		return nil
	}

	if err := ctx.Err(); err != nil {
		return errors.Errorf("task %s: %w", t.name, err)
	}

	if err := os.MkdirAll(t.config.OutputDir, 0755); err != nil {
		return errors.Errorf("creating output directory %s: %w", t.config.OutputDir, err)
	}

	artifacts := t.artifacts(mode)
	if t.tracker != nil {
		for _, a := range artifacts {
			if err := t.tracker.Snapshot(ctx, a.path); err != nil {
				logger.Debug().Err(err).Str("path", a.path).Msg("skipping artifact snapshot")
			}
		}
	}

	var err error
	switch mode {
	case ModePerFileTransform:
		err = t.transformEach(ctx)
	case ModeMergeOnly:
		err = t.merge(ctx)
		if err == nil {
			log.Emitf(ctx, t.events, log.LevelInfo, "", "Skipping minify step.")
		}
	case ModeMergeAndTransform:
		err = t.mergeAndTransform(ctx)
	}
	if err != nil {
		return err
	}

	if t.tracker != nil {
		for _, a := range artifacts {
			if _, err := t.tracker.Record(ctx, a.path, a.kind, t.name); err != nil {
				logger.Debug().Err(err).Str("path", a.path).Msg("skipping artifact record")
			}
		}
	}

	logger.Debug().Int("artifacts", len(artifacts)).Msg("task finished")
	return nil
}

func (t *Task) merge(ctx context.Context) error {
	err := merge.Merge(ctx, merge.Options{
		Files:       t.files,
		Destination: t.MergedPath(),
		Charset:     t.config.Charset,
		BufferSize:  t.config.BufferSize,
		Debug:       t.config.Debug,
	}, t.events)
	if err != nil {
		return errors.Errorf("merging %s: %w", t.config.MergedFilename, err)
	}
	return nil
}

func (t *Task) mergeAndTransform(ctx context.Context) error {
	if err := t.merge(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("task %s: %w", t.name, err)
	}

	merged, transformed := t.MergedPath(), t.TransformedPath()
	if err := t.transform(ctx, merged, transformed); err != nil {
		return err
	}
	return t.Collapse(ctx, merged, transformed)
}

func (t *Task) transformEach(ctx context.Context) error {
	log.Emitf(ctx, t.events, log.LevelInfo, "", "Skipping merge step.")

	for _, src := range t.files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("task %s: %w", t.name, err)
		}

		name := filepath.Base(src)
		transformed := filepath.Join(t.config.OutputDir, naming.Suffixed(name, t.config.Suffix))
		if err := t.transform(ctx, src, transformed); err != nil {
			return err
		}
		if err := t.Collapse(ctx, filepath.Join(t.config.OutputDir, name), transformed); err != nil {
			return err
		}
	}
	return nil
}

func (t *Task) transform(ctx context.Context, input, output string) error {
	name := filepath.Base(output)
	if t.config.Debug {
		name = output
	}
	log.Emitf(ctx, t.events, log.LevelInfo, output, "Creating the minified file [%s].", name)

	if err := t.transformer.Transform(ctx, input, output); err != nil {
		return errors.Errorf("minifying %s: %w", filepath.Base(input), err)
	}

	t.reportSizes(ctx, input, output)
	return nil
}

func (t *Task) reportSizes(ctx context.Context, input, output string) {
	in, err := os.Stat(input)
	if err != nil {
		return
	}
	out, err := os.Stat(output)
	if err != nil {
		return
	}
	log.Emitf(ctx, t.events, log.LevelInfo, output, "Uncompressed size: %d bytes.", in.Size())
	log.Emitf(ctx, t.events, log.LevelInfo, output, "Compressed size: %d bytes.", out.Size())
}

// 🔄 Collapse folds transformed onto merged when the task has no suffix, and
// does nothing otherwise.
func (t *Task) Collapse(ctx context.Context, merged, transformed string) error {
	if !t.config.NoSuffix {
		return nil
	}
	if err := naming.Collapse(ctx, merged, transformed, t.events); err != nil {
		return errors.Errorf("collapsing %s: %w", filepath.Base(transformed), err)
	}
	return nil
}
