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
Package config loads the minifyrc configuration.

🎯 Purpose:
  - Reads .minifyrc.yaml, .minifyrc.yml, .minifyrc.json or .minifyrc.hcl
  - Fills defaults and validates bundles
  - Turns each bundle into a task

🔄 Flow:
 1. GetParser picks a parser by file extension
 2. The parser decodes the file; YAML and JSON expand ${VAR} first, HCL
    exposes the environment as env.NAME
 3. Validate fills defaults and checks every bundle
 4. Tasks builds one task per bundle with the matching minifier

🔍 Example (YAML):

	webapp_source_dir: src/main/webapp
	webapp_target_dir: build/webapp
	bundles:
	  - name: styles
	    type: css
	    includes: ["*.css"]
	    output_file: style.css
	  - name: scripts
	    files: [jquery.js, app.js]
	    output_file: script.js

🔍 Example (HCL):

	webapp_target_dir = "${env.BUILD_DIR}/webapp"

	bundle "styles" {
	  type     = "css"
	  includes = ["*.css"]
	}
*/
package config
