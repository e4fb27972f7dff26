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

// 🧭 Mode is the branch a task takes when executed
type Mode int

const (
	// ModeNoOp means no sources were configured at all
	ModeNoOp Mode = iota
	// ModeNoValidSources means sources were configured but none exist
	ModeNoValidSources
	// ModePerFileTransform transforms every source on its own
	ModePerFileTransform
	// ModeMergeOnly concatenates sources without transforming
	ModeMergeOnly
	// ModeMergeAndTransform concatenates then transforms the result
	ModeMergeAndTransform
)

func (m Mode) String() string {
	switch m {
	case ModeNoOp:
		return "no-op"
	case ModeNoValidSources:
		return "no-valid-sources"
	case ModePerFileTransform:
		return "per-file-transform"
	case ModeMergeOnly:
		return "merge-only"
	case ModeMergeAndTransform:
		return "merge-and-transform"
	default:
		return "unknown"
	}
}
