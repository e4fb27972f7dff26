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

package config

import (
	"context"
	"slices"

	"github.com/walteh/minifyrc/pkg/log"
	"github.com/walteh/minifyrc/pkg/status"
	"github.com/walteh/minifyrc/pkg/task"
	"github.com/walteh/minifyrc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// TaskOptions returns the task options for bundle b. Events, transformer
// and tracker are left for the caller.
func (cfg *Config) TaskOptions(b Bundle) task.Options {
	return task.Options{
		Name:           b.Name,
		BufferSize:     cfg.BufferSize,
		Debug:          cfg.Debug,
		SkipMerge:      cfg.SkipMerge,
		SkipMinify:     cfg.SkipMinify,
		SourceRootDir:  cfg.WebappSourceDir,
		InputDir:       b.SourceDir,
		Files:          b.Files,
		Includes:       b.Includes,
		Excludes:       b.Excludes,
		TargetRootDir:  cfg.WebappTargetDir,
		OutputDir:      b.OutputDir,
		OutputFilename: b.OutputFile,
		Suffix:         cfg.Suffix,
		NoSuffix:       cfg.NoSuffix,
		Charset:        cfg.Charset,
		LineBreak:      cfg.lineBreak(),
	}
}

func (cfg *Config) lineBreak() int {
	if cfg.LineBreak == nil {
		return DefaultLineBreak
	}
	return *cfg.LineBreak
}

// 🏗️ Tasks builds one task per bundle, in config order. When only is not
// empty just the named bundles are built, and naming an unknown bundle is an
// error.
func (cfg *Config) Tasks(ctx context.Context, events log.Events, tracker *status.Tracker, only ...string) ([]*task.Task, error) {
	for _, name := range only {
		if _, ok := cfg.Bundle(name); !ok {
			return nil, errors.Errorf("unknown bundle %q", name)
		}
	}

	var tasks []*task.Task
	for _, b := range cfg.Bundles {
		if len(only) > 0 && !slices.Contains(only, b.Name) {
			continue
		}

		opts := cfg.TaskOptions(b)
		opts.Events = events
		opts.Tracker = tracker

		topts := transform.Options{Charset: cfg.Charset, LineBreak: opts.LineBreak, Debug: cfg.Debug}
		minifier, err := transform.ForExtension("."+b.Type, topts)
		if err != nil {
			return nil, errors.Errorf("creating task %s: %w", b.Name, err)
		}
		opts.Transformer = minifier

		t, err := task.New(ctx, opts)
		if err != nil {
			return nil, errors.Errorf("creating task %s: %w", b.Name, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
