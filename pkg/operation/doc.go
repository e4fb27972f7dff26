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
Package operation schedules independent units of work, such as one task per
bundle.

	+--------+     +-----------+     +----------+
	| Runner | --> | Executor  | --> | progress |
	|        | --> | Executor  |     | callback |
	+--------+     +-----------+     +----------+

🔄 Modes:
  - sync: executors run in order, the first error stops the run
  - async: executors run on an errgroup, bounded by the worker count; the
    first error cancels the context handed to the others

Executors never share state through the runner; whatever they share (an
event sink, an artifact tracker) must be safe for concurrent use.

🔍 Example:

	runner := operation.NewRunner(zerolog.Ctx(ctx), true, 4)
	err := runner.Run(ctx, styles, scripts)
*/
package operation
