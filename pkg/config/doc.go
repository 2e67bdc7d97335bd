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

// Package config holds the optional import settings for imageimporter.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	     +-------------+-------------+
//	     |             |             |
//	+----+----+   +----+----+   +----+----+
//	|  YAML   |   |   HCL   |   |  JSON   |
//	| Parser  |   | Parser  |   | Parser  |
//	+---------+   +---------+   +---------+
//
// 🎯 Purpose:
// - Decides which files count as images (extension allow-list)
// - Excludes matches by doublestar ignore pattern
// - Orders the EXIF fields consulted for the capture date
// - Toggles timestamp preservation on copies
//
// 🔄 Flow:
//  1. The parser is picked from the file extension
//  2. The format-specific syntax is decoded with unknown keys rejected
//  3. Validate fills defaults and normalizes extensions
//
// Running without a config file is the same as loading an empty one.
//
// 🔍 Example (YAML):
//
//	extensions: [jpg, jpeg, cr2]
//	ignore:
//	  - "**/.thumbnails/**"
//	  - "*.tmp.jpg"
//	exif_fields: [DateTimeOriginal, DateTime]
//	preserve_times: false
//
// 🔍 Example (HCL):
//
//	extensions     = ["jpg", "heic"]
//	ignore         = ["${home}/Pictures/cache/**"]
//	preserve_times = true
package config
