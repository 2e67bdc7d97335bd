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
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 30 // Base width for filename
	dateWidth   = 12 // Width for capture date
	sourceWidth = 7  // Width for date source
)

// 🎯 FormatRecordLine formats a record as an aligned, colored line for terminals
func FormatRecordLine(rec Record) string {
	var prefix string
	switch rec.Outcome {
	case OutcomeCopied:
		prefix = color.GreenString("✓")
	case OutcomeSkipped:
		prefix = color.HiBlackString("-")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.YellowString("?")
	}

	date := "-"
	if !rec.CaptureDate.IsZero() {
		date = rec.CaptureDate.Format("2006-01-02")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, rec.Name)
	datePart := fmt.Sprintf("%-*s", dateWidth, date)
	sourcePart := fmt.Sprintf("%-*s", sourceWidth, rec.DateSource)

	line := fmt.Sprintf("%s%s %s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		datePart,
		sourcePart,
		rec.Outcome,
	)
	if rec.Err != nil {
		line += ": " + rec.Err.Error()
	}
	return line
}
