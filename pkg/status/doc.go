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
Package status tracks what a run did to its output artifacts.

	+-----------+     Snapshot      +-----------+
	|   Task    | ----------------> |  Tracker  |
	| (Execute) | ----------------> | (sha256)  |
	+-----------+      Record       +-----+-----+
	                                      |
	                               +------+------+
	                               |  Formatter  |
	                               |   (UI/UX)   |
	                               +-------------+

🎯 Purpose:
  - Remember the checksum of every artifact before a task writes it
  - Classify each artifact afterwards as new, modified, unchanged or deleted
  - Render the outcome for the console

A re-run over unchanged sources reports every artifact as unchanged, which is
how idempotent builds show up in the summary.

🔍 Example:

	tracker := status.New()
	_ = tracker.Snapshot(ctx, "build/webapp/js/bundle.js")
	// ... merge ...
	entry, err := tracker.Record(ctx, "build/webapp/js/bundle.js", status.KindMerged, "scripts")
*/
package status
