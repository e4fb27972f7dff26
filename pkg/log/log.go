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
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent artifact entries
	nameWidth    = 35 // Base width for filename
	kindWidth    = 15 // Width for artifact kind
	statusWidth  = 15 // Width for status text
	consoleLabel = "minifyrc"
)

// 🎯 ArtifactOperation represents a written artifact for logging
type ArtifactOperation struct {
	Path       string // Artifact path
	Kind       string // Artifact kind (merged/minified)
	Status     string // Operation status
	Task       string // Owning task
	IsNew      bool   // Whether this is a new file
	IsModified bool   // Whether the file content changed
	IsRemoved  bool   // Whether the file was removed
	Size       int64  // Size in bytes
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	level   zerolog.Level
	mu      sync.Mutex
}

var _ Events = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		level:   level,
	}
}

// 🏭 NewWithZerolog creates a logger that writes structured records to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		level:   zlog.GetLevel(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Emit prints an event to the console and records it with zerolog
func (l *Logger) Emit(ctx context.Context, ev Event) {
	if ev.Level == LevelDebug && l.level > zerolog.DebugLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatEvent(ev))

	rec := l.zlog.WithLevel(ev.Level.zerolog())
	if ev.Task != "" {
		rec = rec.Str("task", ev.Task)
	}
	if ev.File != "" {
		rec = rec.Str("file", ev.File)
	}
	if ev.Err != nil {
		rec = rec.Err(ev.Err)
	}
	rec.Msg(ev.Message)
}

// 📝 formatEvent formats an event for display
func (l *Logger) formatEvent(ev Event) string {
	var prefix string
	var msgColor *color.Color
	switch ev.Level {
	case LevelDebug:
		prefix = "🔍 "
		msgColor = color.New(color.Faint)
	case LevelWarn:
		prefix = "⚠️  "
		msgColor = color.New(color.FgYellow)
	case LevelError:
		prefix = "❌ "
		msgColor = color.New(color.FgRed)
	default:
		prefix = "ℹ️  "
		msgColor = color.New(color.FgCyan)
	}

	msg := ev.Message
	if ev.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, ev.Err)
	}
	if ev.Task != "" {
		return fmt.Sprintf("%s%s %s", prefix, color.New(color.FgMagenta).Sprintf("[%s]", ev.Task), msgColor.Sprint(msg))
	}
	return prefix + msgColor.Sprint(msg)
}

// 📝 formatArtifactOperation formats an artifact operation for display
func (l *Logger) formatArtifactOperation(op ArtifactOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "merged":
		kindColor = color.FgYellow
	case "minified":
		kindColor = color.FgCyan
	default:
		kindColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogArtifact logs an artifact operation
func (l *Logger) LogArtifact(ctx context.Context, op ArtifactOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatArtifactOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Str("task", op.Task).
		Int64("size", op.Size).
		Bool("is_new", op.IsNew).
		Bool("is_modified", op.IsModified).
		Bool("is_removed", op.IsRemoved).
		Msg("artifact")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	label := color.New(color.Bold, color.FgCyan).Sprint(consoleLabel)
	fmt.Fprintf(l.console, "\n%s %s\n\n", label, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
