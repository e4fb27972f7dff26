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
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🎭 MockExecutor is a mock implementation of the Executor interface
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Name() string {
	return m.Called().String(0)
}

func (m *MockExecutor) Execute(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// 🧪 fakeExecutor records its runs and concurrency
type fakeExecutor struct {
	name    string
	err     error
	delay   time.Duration
	order   *[]string
	mu      *sync.Mutex
	running *int32
	peak    *int32
}

func (f *fakeExecutor) Name() string { return f.name }

func (f *fakeExecutor) Execute(ctx context.Context) error {
	if f.running != nil {
		n := atomic.AddInt32(f.running, 1)
		defer atomic.AddInt32(f.running, -1)
		for {
			p := atomic.LoadInt32(f.peak)
			if n <= p || atomic.CompareAndSwapInt32(f.peak, p, n) {
				break
			}
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.order != nil {
		f.mu.Lock()
		*f.order = append(*f.order, f.name)
		f.mu.Unlock()
	}
	return f.err
}

func testLogger(t *testing.T) *zerolog.Logger {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return &logger
}

func TestRunnerSync(t *testing.T) {
	var order []string
	var mu sync.Mutex
	execs := []Executor{
		&fakeExecutor{name: "a", order: &order, mu: &mu},
		&fakeExecutor{name: "b", order: &order, mu: &mu},
		&fakeExecutor{name: "c", order: &order, mu: &mu},
	}

	var progress []int
	err := NewRunner(testLogger(t), false, 0).
		WithProgress(func(done, total int) {
			assert.Equal(t, 3, total)
			progress = append(progress, done)
		}).
		Run(context.Background(), execs...)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, order, "sync mode should keep order")
	assert.Equal(t, []int{1, 2, 3}, progress)
}

func TestRunnerSyncStopsAtFirstError(t *testing.T) {
	errBoom := errors.New("boom")

	first := &MockExecutor{}
	first.On("Name").Return("styles")
	first.On("Execute", mock.Anything).Return(errBoom).Once()

	second := &MockExecutor{}

	err := NewRunner(testLogger(t), false, 0).Run(context.Background(), first, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "running styles")

	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestRunnerAsync(t *testing.T) {
	var running, peak int32
	var order []string
	var mu sync.Mutex

	var execs []Executor
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		execs = append(execs, &fakeExecutor{
			name:    name,
			delay:   20 * time.Millisecond,
			order:   &order,
			mu:      &mu,
			running: &running,
			peak:    &peak,
		})
	}

	var calls int32
	err := NewRunner(testLogger(t), true, 2).
		WithProgress(func(done, total int) { atomic.AddInt32(&calls, 1) }).
		Run(context.Background(), execs...)
	require.NoError(t, err)

	assert.Len(t, order, 6, "every executor should run")
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2), "worker limit should hold")
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
}

func TestRunnerAsyncError(t *testing.T) {
	errBoom := errors.New("boom")
	execs := []Executor{
		&fakeExecutor{name: "ok"},
		&fakeExecutor{name: "bad", err: errBoom},
		&fakeExecutor{name: "slow", delay: 10 * time.Millisecond},
	}

	err := NewRunner(testLogger(t), true, 0).Run(context.Background(), execs...)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "running bad")
}

func TestRunnerCancelled(t *testing.T) {
	for _, async := range []bool{false, true} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		exec := &MockExecutor{}
		err := NewRunner(nil, async, 0).Run(ctx, exec)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		exec.AssertNotCalled(t, "Execute", mock.Anything)
	}
}

func TestRunnerEmpty(t *testing.T) {
	assert.NoError(t, NewRunner(nil, true, 1).Run(context.Background()))
	assert.NoError(t, NewRunner(nil, false, 1).Run(context.Background()))
}
