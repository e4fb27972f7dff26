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

/*
Package task orchestrates one bundle: resolve the sources once, then merge
and/or minify them into the output directory.

	+----------+    +---------+    +-----------+    +----------+
	| resolve  | -> |  merge  | -> | transform | -> | collapse |
	| (New)    |    |         |    |           |    | nosuffix |
	+----------+    +---------+    +-----------+    +----------+

🧭 Modes (see Plan):
  - no-op: nothing configured, nothing happens
  - no-valid-sources: sources configured but none found, an error event is emitted
  - per-file-transform: skip merge, each source becomes outputDir/name.min.ext
  - merge-only: skip minify, sources become outputDir/merged
  - merge-and-transform: outputDir/merged then outputDir/merged.min.ext

With NoSuffix the transformed file replaces its unsuffixed counterpart.

A Task keeps no shared mutable state, so independent tasks may run on their own
goroutines and share one Events sink and one status.Tracker.

🔍 Example:

	t, err := task.New(ctx, task.Options{
		Name:           "scripts",
		Events:         logger,
		Transformer:    transform.JS(transform.Options{}),
		SourceRootDir:  "src/main/webapp",
		InputDir:       "js",
		Includes:       []string{"*.js"},
		TargetRootDir:  "build/webapp",
		OutputDir:      "js",
		OutputFilename: "bundle.js",
		Suffix:         ".min",
	})
	if err != nil {
		return err
	}
	return t.Execute(ctx)
*/
package task
