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
Package status records the outcome of every imported file and prints the
notice lines users and scripts read.

	+-----------+     Track(Record)     +-----------+
	| Importer  | --------------------> |  Manager  |
	+-----------+                       +-----+-----+
	                                          |
	                               FileFormatter lines
	                                          |
	                                          v
	                                       stdout

🎯 Purpose:
- Keeps outcomes as data (Copied, Skipped, Failed) for tests and summaries
- Prints exactly one line per notice, in processing order
- Counts outcomes and created date folders

📝 Lines written by DefaultFileFormatter:

	Created destination directory: <path>
	Created directory: <date folder>
	Copied <name> to <destination>
	Skipped <name>: File already exists in <date folder>
	Error processing <name>: <reason>

These lines are uncolored and unprefixed. Anything decorative goes to
stderr through pkg/log instead.
*/
package status
