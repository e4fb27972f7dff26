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

package log

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 Level is the severity of an event
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns a string representation of Level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// 📨 Event is a single structured message emitted by the pipeline
type Event struct {
	Level   Level
	Message string
	File    string // optional path the event is about
	Task    string // optional owning task
	Err     error
}

// 📡 Events receives pipeline events. Implementations must be safe for
// concurrent use since independent tasks share one sink.
type Events interface {
	Emit(ctx context.Context, ev Event)
}

// Emitf emits a formatted event on sink. A nil sink drops the event.
func Emitf(ctx context.Context, sink Events, level Level, file string, format string, args ...interface{}) {
	if sink == nil {
		return
	}
	sink.Emit(ctx, Event{Level: level, Message: fmt.Sprintf(format, args...), File: file})
}

// EmitErr emits an error event carrying err.
func EmitErr(ctx context.Context, sink Events, file string, err error, msg string) {
	if sink == nil {
		return
	}
	sink.Emit(ctx, Event{Level: LevelError, Message: msg, File: file, Err: err})
}

type nop struct{}

func (nop) Emit(context.Context, Event) {}

// Nop returns a sink that discards every event.
func Nop() Events { return nop{} }

type named struct {
	name string
	next Events
}

func (n *named) Emit(ctx context.Context, ev Event) {
	if ev.Task == "" {
		ev.Task = n.name
	}
	n.next.Emit(ctx, ev)
}

// Named tags every event passing through with the given task name.
func Named(next Events, name string) Events {
	if next == nil {
		next = Nop()
	}
	if name == "" {
		return next
	}
	return &named{name: name, next: next}
}

type tee []Events

func (t tee) Emit(ctx context.Context, ev Event) {
	for _, s := range t {
		s.Emit(ctx, ev)
	}
}

// Tee fans each event out to all sinks in order.
func Tee(sinks ...Events) Events {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// 📼 Recorder keeps every event in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Events
func (r *Recorder) Emit(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events in emission order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Filter returns the recorded events at the given level
func (r *Recorder) Filter(level Level) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Level == level {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns how many events were recorded at the given level
func (r *Recorder) Count(level Level) int {
	return len(r.Filter(level))
}
