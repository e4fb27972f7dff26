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

package resolve

import (
	"path/filepath"
	"strings"
)

// CompareFilenames orders paths by base name: case-insensitive first, then
// case-sensitive, with a name sorting before any longer name it prefixes.
// The full path breaks remaining ties.
func CompareFilenames(a, b string) int {
	an, bn := filepath.Base(a), filepath.Base(b)
	if c := strings.Compare(strings.ToLower(an), strings.ToLower(bn)); c != 0 {
		return c
	}
	if c := strings.Compare(an, bn); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// DefaultExcludes are always removed from include matches: editor backups,
// OS metadata and version control directories.
var DefaultExcludes = []string{
	// Miscellaneous typical temporary files
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",

	// CVS
	"**/CVS",
	"**/CVS/**",
	"**/.cvsignore",

	// SCCS
	"**/SCCS",
	"**/SCCS/**",

	// Visual SourceSafe
	"**/vssver.scc",

	// Subversion
	"**/.svn",
	"**/.svn/**",

	// Git
	"**/.git",
	"**/.git/**",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",

	// Mercurial
	"**/.hg",
	"**/.hg/**",
	"**/.hgignore",
	"**/.hgsub",
	"**/.hgsubstate",
	"**/.hgtags",

	// Bazaar
	"**/.bzr",
	"**/.bzr/**",
	"**/.bzrignore",

	// Darcs
	"**/_darcs",
	"**/_darcs/**",

	// Mac
	"**/.DS_Store",
}
