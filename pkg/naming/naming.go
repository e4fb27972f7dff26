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

// Package naming derives output file names and folds a transformed artifact
// back onto its unsuffixed name.
package naming

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/minifyrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultSuffix is inserted before the extension of transformed files
const DefaultSuffix = ".min"

// Extension returns the extension of name's base, including the dot, or ""
// when the base has no dot.
func Extension(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i:]
}

// 🏷️ Suffixed inserts suffix before the extension of name. Directory
// components are kept, so bundle.js becomes bundle.min.js and dist/app
// becomes dist/app.min.
func Suffixed(name, suffix string) string {
	ext := Extension(name)
	return name[:len(name)-len(ext)] + suffix + ext
}

// 🔄 Collapse replaces merged with transformed: merged is deleted, then
// transformed is renamed onto its path. A missing merged file is not an error.
func Collapse(ctx context.Context, merged, transformed string, events log.Events) error {
	if filepath.Clean(merged) == filepath.Clean(transformed) {
		return nil
	}

	log.Emitf(ctx, events, log.LevelDebug, merged, "Deleting the file [%s].", filepath.Base(merged))
	if err := os.Remove(merged); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("deleting %s: %w", merged, err)
	}

	log.Emitf(ctx, events, log.LevelDebug, transformed, "Renaming the file [%s] to [%s].", filepath.Base(transformed), filepath.Base(merged))
	if err := os.Rename(transformed, merged); err != nil {
		return errors.Errorf("renaming %s to %s: %w", transformed, merged, err)
	}

	zerolog.Ctx(ctx).Debug().Str("from", transformed).Str("to", merged).Msg("collapsed artifact")
	return nil
}
