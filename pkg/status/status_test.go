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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imageimporter/pkg/metadata"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestManager(t *testing.T) {
	tests := []struct {
		name       string
		run        func(ctx context.Context, mgr *Manager)
		wantLines  []string
		wantCounts Counts
	}{
		{
			name: "fresh_import",
			run: func(ctx context.Context, mgr *Manager) {
				mgr.CreatedDestination(ctx, "/dest")
				mgr.CreatedFolder(ctx, "/dest/2024-03-15")
				mgr.Track(ctx, Record{
					Name:        "test1.jpg",
					Folder:      "/dest/2024-03-15",
					Destination: "/dest/2024-03-15/test1.jpg",
					Outcome:     OutcomeCopied,
				})
			},
			wantLines: []string{
				"Created destination directory: /dest",
				"Created directory: /dest/2024-03-15",
				"Copied test1.jpg to /dest/2024-03-15/test1.jpg",
			},
			wantCounts: Counts{Copied: 1, Folders: 1},
		},
		{
			name: "second_run_skips",
			run: func(ctx context.Context, mgr *Manager) {
				mgr.Track(ctx, Record{
					Name:    "test1.jpg",
					Folder:  "/dest/2024-03-15",
					Outcome: OutcomeSkipped,
				})
			},
			wantLines: []string{
				"Skipped test1.jpg: File already exists in /dest/2024-03-15",
			},
			wantCounts: Counts{Skipped: 1},
		},
		{
			name: "failure_reason",
			run: func(ctx context.Context, mgr *Manager) {
				mgr.Track(ctx, Record{
					Name:    "test2.jpg",
					Outcome: OutcomeFailed,
					Err:     errors.New("creating date folder: permission denied"),
				})
				mgr.Track(ctx, Record{
					Name:        "test3.jpg",
					Destination: "/dest/2024-03-16/test3.jpg",
					Outcome:     OutcomeCopied,
				})
			},
			wantLines: []string{
				"Error processing test2.jpg: creating date folder: permission denied",
				"Copied test3.jpg to /dest/2024-03-16/test3.jpg",
			},
			wantCounts: Counts{Copied: 1, Failed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mgr := New(&buf)

			tt.run(testContext(t), mgr)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.wantLines, lines, "lines should match")
			assert.Equal(t, tt.wantCounts, mgr.Counts(), "counts should match")
			assert.Equal(t, tt.wantCounts.Total(), len(mgr.Records()), "every file should be recorded")
		})
	}
}

func TestManagerRecordsAreCopies(t *testing.T) {
	mgr := New(nil)
	mgr.Track(testContext(t), Record{Name: "a.jpg", Outcome: OutcomeCopied})

	recs := mgr.Records()
	require.Len(t, recs, 1)
	recs[0].Name = "changed"
	assert.Equal(t, "a.jpg", mgr.Records()[0].Name, "records should not be shared")
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	assert.Equal(t, "Created destination directory: out", f.FormatCreatedDestination("out"))
	assert.Equal(t, "Created directory: out/2024-03-15", f.FormatCreatedFolder("out/2024-03-15"))
	assert.Equal(t, "Copied a.jpg to out/2024-03-15/a.jpg", f.FormatCopied("a.jpg", "out/2024-03-15/a.jpg"))
	assert.Equal(t, "Skipped a.jpg: File already exists in out/2024-03-15", f.FormatSkipped("a.jpg", "out/2024-03-15"))
	assert.Equal(t, "Error processing a.jpg: boom", f.FormatFailed("a.jpg", errors.New("boom")))
	assert.Equal(t, "Error processing a.jpg: unknown error", f.FormatFailed("a.jpg", nil))
}

type upperFormatter struct {
	DefaultFileFormatter
}

func (upperFormatter) FormatCopied(name, destination string) string {
	return strings.ToUpper("copied " + name)
}

func TestManagerWithFormatter(t *testing.T) {
	var buf bytes.Buffer
	mgr := New(&buf).WithFormatter(&upperFormatter{})
	mgr.Track(testContext(t), Record{Name: "a.jpg", Outcome: OutcomeCopied})
	assert.Equal(t, "COPIED A.JPG\n", buf.String())
}

func TestFormatRecordLine(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	tests := []struct {
		name string
		rec  Record
		want []string
	}{
		{
			name: "copied_from_exif",
			rec: Record{
				Name:        "test1.jpg",
				CaptureDate: time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local),
				DateSource:  metadata.SourceExif,
				Outcome:     OutcomeCopied,
			},
			want: []string{"✓", "test1.jpg", "2024-03-15", "exif", "copied"},
		},
		{
			name: "failed_without_date",
			rec: Record{
				Name:    "gone.jpg",
				Outcome: OutcomeFailed,
				Err:     errors.New("reading file times: no such file"),
			},
			want: []string{"✗", "gone.jpg", "-", "unknown", "failed: reading file times: no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRecordLine(tt.rec)
			assert.True(t, strings.HasPrefix(got, "    "), "line should be indented")
			for _, part := range tt.want {
				assert.Contains(t, got, part)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "copied", OutcomeCopied.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", OutcomeUnknown.String())
}
