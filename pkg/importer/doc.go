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
Package importer copies image files into date folders under a destination root.

	  patterns             +-------------+
	 ------------------->  |   source    |  Expand + Filter
	                       +------+------+
	                              |
	                              v
	                       +-------------+
	                       |  metadata   |  EXIF date, else mtime
	                       +------+------+
	                              |
	                              v
	                       +-------------+
	                       |  importer   |  YYYY-MM-DD folder, copy or skip
	                       +------+------+
	                              |
	                              v
	                       +-------------+
	                       |   status    |  one line per notice
	                       +-------------+

🔄 Flow per file:
 1. Resolve the capture date
 2. Ensure the date folder exists
 3. Skip when the folder already holds a file with the same name
 4. Otherwise copy content, permission bits and file times

Files are handled one at a time in pattern order. A failure is recorded for
that file only and the next file is processed.

An existing destination file is never replaced: the copy is created with
O_EXCL, so a file that appears after the existence check is still reported
as skipped.
*/
package importer
