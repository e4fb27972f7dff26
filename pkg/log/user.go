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
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints run summaries for humans and mirrors them to zerolog
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 ChangeType represents what a run did to an artifact
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeUpdated
	ChangeUnchanged
	ChangeDeleted
	ChangeError
)

// 🖼️ Change represents a change to one artifact
type Change struct {
	Type        ChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogChange logs an artifact change with appropriate emoji and formatting
func (u *UserLogger) LogChange(change Change) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case ChangeAdded:
		action = "Added"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case ChangeUpdated:
		action = "Updated"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄"})
	case ChangeDeleted:
		action = "Deleted"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "🗑️"})
	case ChangeError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	default:
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	}

	msg := fmt.Sprintf("%s %s", action, filepath.Base(change.Path))
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Str("file", change.Path).Msg(msg)
		return
	}
	u.log.Info().Str("file", change.Path).Msg(msg)
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}
