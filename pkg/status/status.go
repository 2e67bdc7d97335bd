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
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/walteh/imageimporter/pkg/metadata"
)

// 📊 Outcome is the result of importing one file
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCopied          // File copied into its date folder
	OutcomeSkipped         // Same-named file already in the date folder
	OutcomeFailed          // Folder creation or copy failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Record describes what happened to a single source file
type Record struct {
	Source      string          // Path as matched from the source pattern
	Name        string          // Base name, kept unchanged in the destination
	CaptureDate time.Time       // Resolved capture date, zero if never resolved
	DateSource  metadata.Source // Where CaptureDate came from
	Folder      string          // Date folder path
	Destination string          // Folder joined with Name
	Outcome     Outcome
	Err         error // Set only for OutcomeFailed
}

// 📈 Reporter receives import notices as they happen
type Reporter interface {
	CreatedDestination(ctx context.Context, path string)
	CreatedFolder(ctx context.Context, path string)
	Track(ctx context.Context, rec Record)
}

// 🔢 Counts tallies records by outcome
type Counts struct {
	Copied  int
	Skipped int
	Failed  int
	Folders int // date folders created
}

// Total returns the number of files processed
func (c Counts) Total() int {
	return c.Copied + c.Skipped + c.Failed
}

// 🔧 Manager implements Reporter by writing one line per notice
type Manager struct {
	out       io.Writer     // Where notice lines go, usually stdout
	formatter FileFormatter // Formatter for notice lines

	mu      sync.Mutex
	records []Record
	folders int
}

// 🏭 New creates a new status manager writing to out
func New(out io.Writer) *Manager {
	return &Manager{
		out:       out,
		formatter: NewDefaultFileFormatter(),
	}
}

// WithFormatter replaces the line formatter
func (m *Manager) WithFormatter(f FileFormatter) *Manager {
	m.formatter = f
	return m
}

func (m *Manager) CreatedDestination(ctx context.Context, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("created destination directory")
	m.println(m.formatter.FormatCreatedDestination(path))
}

func (m *Manager) CreatedFolder(ctx context.Context, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.folders++
	zerolog.Ctx(ctx).Debug().Str("folder", path).Msg("created date folder")
	m.println(m.formatter.FormatCreatedFolder(path))
}

func (m *Manager) Track(ctx context.Context, rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)

	logger := zerolog.Ctx(ctx)
	switch rec.Outcome {
	case OutcomeCopied:
		logger.Debug().Str("path", rec.Source).Str("destination", rec.Destination).Msg("copied")
		m.println(m.formatter.FormatCopied(rec.Name, rec.Destination))
	case OutcomeSkipped:
		logger.Debug().Str("path", rec.Source).Str("folder", rec.Folder).Msg("skipped")
		m.println(m.formatter.FormatSkipped(rec.Name, rec.Folder))
	default:
		logger.Warn().Err(rec.Err).Str("path", rec.Source).Msg("import failed")
		m.println(m.formatter.FormatFailed(rec.Name, rec.Err))
	}
}

// Records returns a copy of every tracked record in tracking order
func (m *Manager) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Counts tallies the tracked records
func (m *Manager) Counts() Counts {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := Tally(m.records)
	c.Folders = m.folders
	return c
}

// Tally counts records by outcome. Folders is left zero.
func Tally(records []Record) Counts {
	var c Counts
	for _, rec := range records {
		switch rec.Outcome {
		case OutcomeCopied:
			c.Copied++
		case OutcomeSkipped:
			c.Skipped++
		case OutcomeFailed:
			c.Failed++
		}
	}
	return c
}

func (m *Manager) println(line string) {
	if m.out == nil {
		return
	}
	// stdout write errors have nowhere better to go
	_, _ = fmt.Fprintln(m.out, line)
}
