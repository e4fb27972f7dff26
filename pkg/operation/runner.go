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

package operation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔌 Executor is one unit of work the runner schedules
type Executor interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🏃 Runner executes a set of executors, one after the other or concurrently
type Runner struct {
	logger   *zerolog.Logger
	async    bool
	workers  int
	progress func(done, total int)
}

// 🏗️ NewRunner creates a new runner. workers bounds concurrency in async
// mode; zero or less means no bound.
func NewRunner(logger *zerolog.Logger, async bool, workers int) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		logger:  logger,
		async:   async,
		workers: workers,
	}
}

// WithProgress sets a callback invoked after each executor finishes
func (r *Runner) WithProgress(fn func(done, total int)) *Runner {
	r.progress = fn
	return r
}

// 🏃 Run executes every executor. The first failure fails the run; once the
// context is done no further executor is started.
func (r *Runner) Run(ctx context.Context, execs ...Executor) error {
	if len(execs) == 0 {
		return nil
	}
	if r.async {
		return r.runAsync(ctx, execs)
	}
	return r.runSync(ctx, execs)
}

// 🔄 runSync runs executors in order and stops at the first error
func (r *Runner) runSync(ctx context.Context, execs []Executor) error {
	for i, e := range execs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := r.execute(ctx, e); err != nil {
			return err
		}
		r.report(i+1, len(execs))
	}
	return nil
}

// ⚡ runAsync runs executors concurrently, bounded by the worker limit
func (r *Runner) runAsync(ctx context.Context, execs []Executor) error {
	g, gctx := errgroup.WithContext(ctx)
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}

	var mu sync.Mutex
	done := 0

	for _, e := range execs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			if err := r.execute(gctx, e); err != nil {
				return err
			}
			mu.Lock()
			done++
			r.report(done, len(execs))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return nil
}

func (r *Runner) execute(ctx context.Context, e Executor) error {
	r.logger.Debug().Str("executor", e.Name()).Bool("async", r.async).Msg("running")
	if err := e.Execute(ctx); err != nil {
		return errors.Errorf("running %s: %w", e.Name(), err)
	}
	r.logger.Debug().Str("executor", e.Name()).Msg("finished")
	return nil
}

func (r *Runner) report(done, total int) {
	if r.progress != nil {
		r.progress(done, total)
	}
}
