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

package status

import (
	"fmt"
)

// FileFormatter defines how import notices are formatted
type FileFormatter interface {
	// FormatCreatedDestination formats the notice for a newly created destination root
	FormatCreatedDestination(path string) string

	// FormatCreatedFolder formats the notice for a newly created date folder
	FormatCreatedFolder(path string) string

	// FormatCopied formats the notice for a copied file
	FormatCopied(name, destination string) string

	// FormatSkipped formats the notice for a file that already exists
	FormatSkipped(name, folder string) string

	// FormatFailed formats the notice for a file that could not be imported
	FormatFailed(name string, err error) string
}

// DefaultFileFormatter produces the plain lines scripts can parse
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) FormatCreatedDestination(path string) string {
	return fmt.Sprintf("Created destination directory: %s", path)
}

func (f *DefaultFileFormatter) FormatCreatedFolder(path string) string {
	return fmt.Sprintf("Created directory: %s", path)
}

func (f *DefaultFileFormatter) FormatCopied(name, destination string) string {
	return fmt.Sprintf("Copied %s to %s", name, destination)
}

func (f *DefaultFileFormatter) FormatSkipped(name, folder string) string {
	return fmt.Sprintf("Skipped %s: File already exists in %s", name, folder)
}

func (f *DefaultFileFormatter) FormatFailed(name string, err error) string {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return fmt.Sprintf("Error processing %s: %s", name, reason)
}
