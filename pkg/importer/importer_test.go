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

package importer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walteh/imageimporter/gen/mockery"
	"github.com/walteh/imageimporter/pkg/config"
	"github.com/walteh/imageimporter/pkg/importer"
	"github.com/walteh/imageimporter/pkg/metadata"
	"github.com/walteh/imageimporter/pkg/status"
	"github.com/walteh/imageimporter/pkg/testutils"
)

// 🧪 fixture mirrors a camera card: two dated JPEGs, one without EXIF
type fixture struct {
	sourceDir string
	destDir   string
	noExifAt  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	f := &fixture{
		sourceDir: filepath.Join(root, "source"),
		destDir:   filepath.Join(root, "destination"),
		noExifAt:  time.Date(2023, 1, 2, 12, 0, 0, 0, time.Local),
	}

	testutils.WriteJPEG(t, f.sourceDir, "test1.jpg", map[string]string{"DateTime": "2024:03:15 10:30:00"})
	testutils.WriteJPEG(t, f.sourceDir, "test2.jpg", map[string]string{"DateTime": "2024:03:16 15:45:00"})
	noExif := testutils.WriteJPEG(t, f.sourceDir, "test_no_exif.jpg", nil)
	testutils.SetModTime(t, noExif, f.noExifAt)

	return f
}

func (f *fixture) src(name string) string {
	return filepath.Join(f.sourceDir, name)
}

func (f *fixture) dest(parts ...string) string {
	return filepath.Join(append([]string{f.destDir}, parts...)...)
}

// run imports sources and returns the records and the printed lines
func (f *fixture) run(t *testing.T, cfg *config.Config, sources ...string) ([]status.Record, []string) {
	t.Helper()

	var buf bytes.Buffer
	imp, err := importer.New(importer.Options{
		Sources:     sources,
		Destination: f.destDir,
		Config:      cfg,
		Reporter:    status.New(&buf),
	})
	require.NoError(t, err, "creating importer")

	records := imp.ImportAll(testutils.Context(t))

	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return records, nil
	}
	return records, strings.Split(out, "\n")
}

func TestImportAll(t *testing.T) {
	f := newFixture(t)

	records, lines := f.run(t, nil, f.src("*.jpg"))

	assert.Equal(t, []string{
		"Created destination directory: " + f.destDir,
		"Created directory: " + f.dest("2024-03-15"),
		"Copied test1.jpg to " + f.dest("2024-03-15", "test1.jpg"),
		"Created directory: " + f.dest("2024-03-16"),
		"Copied test2.jpg to " + f.dest("2024-03-16", "test2.jpg"),
		"Created directory: " + f.dest("2023-01-02"),
		"Copied test_no_exif.jpg to " + f.dest("2023-01-02", "test_no_exif.jpg"),
	}, lines)

	assert.FileExists(t, f.dest("2024-03-15", "test1.jpg"))
	assert.FileExists(t, f.dest("2024-03-16", "test2.jpg"))
	assert.FileExists(t, f.dest("2023-01-02", "test_no_exif.jpg"))

	require.Len(t, records, 3)
	assert.Equal(t, metadata.SourceExif, records[0].DateSource)
	assert.Equal(t, metadata.SourceExif, records[1].DateSource)
	assert.Equal(t, metadata.SourceModTime, records[2].DateSource)
	for _, rec := range records {
		assert.Equal(t, status.OutcomeCopied, rec.Outcome, "%s should be copied", rec.Name)
	}
}

func TestImportSpecificFile(t *testing.T) {
	f := newFixture(t)

	_, lines := f.run(t, nil, f.src("test1.jpg"))

	assert.FileExists(t, f.dest("2024-03-15", "test1.jpg"))
	assert.NoDirExists(t, f.dest("2024-03-16"), "unrelated date folder should not exist")
	assert.Len(t, lines, 3)
}

func TestImportMultiplePatterns(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.src("test_no_exif.jpg")))
	testutils.WriteFile(t, f.sourceDir, "IMG_0001.CR2", []byte("raw one"), time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))
	testutils.WriteFile(t, f.sourceDir, "IMG_0002.CR2", []byte("raw two"), time.Date(2024, 3, 16, 12, 0, 0, 0, time.Local))

	records, lines := f.run(t, nil, f.src("*.jpg"), f.src("*.CR2"))

	require.Len(t, records, 4)
	for _, name := range []string{"test1.jpg", "IMG_0001.CR2"} {
		assert.FileExists(t, f.dest("2024-03-15", name))
	}
	for _, name := range []string{"test2.jpg", "IMG_0002.CR2"} {
		assert.FileExists(t, f.dest("2024-03-16", name))
	}

	count := func(line string) int {
		n := 0
		for _, l := range lines {
			if l == line {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count("Created destination directory: "+f.destDir))
	assert.Equal(t, 1, count("Created directory: "+f.dest("2024-03-15")))
	assert.Equal(t, 1, count("Created directory: "+f.dest("2024-03-16")))
}

func TestImportIsIdempotent(t *testing.T) {
	f := newFixture(t)

	_, _ = f.run(t, nil, f.src("*.jpg"))
	before, err := os.ReadFile(f.dest("2024-03-15", "test1.jpg"))
	require.NoError(t, err)

	records, lines := f.run(t, nil, f.src("*.jpg"))

	assert.Equal(t, []string{
		"Skipped test1.jpg: File already exists in " + f.dest("2024-03-15"),
		"Skipped test2.jpg: File already exists in " + f.dest("2024-03-16"),
		"Skipped test_no_exif.jpg: File already exists in " + f.dest("2023-01-02"),
	}, lines)
	assert.Equal(t, status.Counts{Skipped: 3}, status.Tally(records))

	after, err := os.ReadFile(f.dest("2024-03-15", "test1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportNeverOverwrites(t *testing.T) {
	f := newFixture(t)
	existing := testutils.WriteFile(t, f.dest("2024-03-15"), "test1.jpg", []byte("original"), time.Now())

	records, lines := f.run(t, nil, f.src("test1.jpg"))

	assert.Equal(t, []string{
		"Skipped test1.jpg: File already exists in " + f.dest("2024-03-15"),
	}, lines)
	require.Len(t, records, 1)
	assert.Equal(t, status.OutcomeSkipped, records[0].Outcome)

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "existing file must keep its content")
}

func TestImportContinuesAfterError(t *testing.T) {
	f := newFixture(t)
	// a regular file where the 2024-03-15 folder should go
	testutils.WriteFile(t, f.destDir, "2024-03-15", []byte("in the way"), time.Now())

	records, lines := f.run(t, nil, f.src("test1.jpg"), f.src("test2.jpg"))

	require.Len(t, records, 2)
	assert.Equal(t, status.OutcomeFailed, records[0].Outcome)
	require.Error(t, records[0].Err)
	assert.Contains(t, records[0].Err.Error(), "not a directory")
	assert.Equal(t, status.OutcomeCopied, records[1].Outcome)

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Error processing test1.jpg: "), "got %q", lines[0])
	assert.Equal(t, "Created directory: "+f.dest("2024-03-16"), lines[1])
	assert.Equal(t, "Copied test2.jpg to "+f.dest("2024-03-16", "test2.jpg"), lines[2])
}

func TestImportUnusableDestination(t *testing.T) {
	f := newFixture(t)
	blocker := testutils.WriteFile(t, t.TempDir(), "blocker", []byte("x"), time.Now())
	f.destDir = filepath.Join(blocker, "photos")

	records, lines := f.run(t, nil, f.src("test1.jpg"), f.src("test2.jpg"))

	require.Len(t, records, 2)
	require.Len(t, lines, 2)
	for i, rec := range records {
		assert.Equal(t, status.OutcomeFailed, rec.Outcome)
		assert.True(t, strings.HasPrefix(lines[i], "Error processing "+rec.Name+": "), "got %q", lines[i])
	}
}

func TestImportSkipsUnsupportedFiles(t *testing.T) {
	f := newFixture(t)
	testutils.WriteFile(t, f.sourceDir, "notes.txt", []byte("hello"), time.Now())
	require.NoError(t, os.Mkdir(f.src("album.jpg"), 0755))

	records, _ := f.run(t, nil, f.src("*"))

	var names []string
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	assert.ElementsMatch(t, []string{"test1.jpg", "test2.jpg", "test_no_exif.jpg"}, names)
}

func TestImportHonorsConfig(t *testing.T) {
	f := newFixture(t)
	testutils.WriteJPEG(t, filepath.Join(f.sourceDir, "thumbnails"), "test3.jpg", map[string]string{"DateTime": "2024:03:17 09:00:00"})

	preserve := false
	cfg := &config.Config{
		Extensions:    []string{"JPG"},
		Ignore:        []string{filepath.ToSlash(f.sourceDir) + "/thumbnails/**", "test_no_exif.jpg"},
		PreserveTimes: &preserve,
	}

	records, _ := f.run(t, cfg, f.src("**/*.jpg"))

	var names []string
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	assert.ElementsMatch(t, []string{"test1.jpg", "test2.jpg"}, names)
	assert.NoDirExists(t, f.dest("2024-03-17"))
}

func TestImportSkipsResourceForks(t *testing.T) {
	f := newFixture(t)
	testutils.WriteFile(t, f.sourceDir, "._test1.jpg", []byte("fork"), time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local))

	records, lines := f.run(t, nil, f.src("*.jpg"), f.src("test1.jpg"))

	var names []string
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	assert.ElementsMatch(t, []string{"test1.jpg", "test2.jpg", "test_no_exif.jpg"}, names)
	assert.NotContains(t, strings.Join(lines, "\n"), "._test1.jpg")
	assert.NoDirExists(t, f.dest("2020-01-01"), "dot files should not create date folders")
}

func TestImportPreservesFileAttributes(t *testing.T) {
	f := newFixture(t)
	mtime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	src := testutils.WriteFile(t, f.sourceDir, "IMG_0001.CR2", []byte("raw"), mtime)
	require.NoError(t, os.Chmod(src, 0640))

	_, _ = f.run(t, nil, src)

	info, err := os.Stat(f.dest("2024-03-15", "IMG_0001.CR2"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "permissions should be copied")
	assert.True(t, mtime.Equal(info.ModTime()), "mtime should be preserved, got %s", info.ModTime())
}

func TestImportWithoutPreservingTimes(t *testing.T) {
	f := newFixture(t)
	preserve := false

	_, _ = f.run(t, &config.Config{PreserveTimes: &preserve}, f.src("test_no_exif.jpg"))

	info, err := os.Stat(f.dest("2023-01-02", "test_no_exif.jpg"))
	require.NoError(t, err)
	assert.False(t, f.noExifAt.Equal(info.ModTime()), "copy should carry a fresh mtime")
}

func TestResolveCaptureDate(t *testing.T) {
	f := newFixture(t)
	ctx := testutils.Context(t)

	imp, err := importer.New(importer.Options{Sources: []string{f.sourceDir}, Destination: f.destDir})
	require.NoError(t, err)

	got, err := imp.ResolveCaptureDate(ctx, f.src("test1.jpg"))
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local).Equal(got))

	got, err = imp.ResolveCaptureDate(ctx, f.src("test_no_exif.jpg"))
	require.NoError(t, err)
	assert.True(t, f.noExifAt.Equal(got))

	_, err = imp.ResolveCaptureDate(ctx, f.src("missing.jpg"))
	require.Error(t, err)

	assert.NoDirExists(t, f.destDir, "construction and date resolution should not touch the destination")
}

func TestResolveCaptureDateUsesReader(t *testing.T) {
	f := newFixture(t)
	want := time.Date(2001, 9, 9, 1, 46, 40, 0, time.Local)

	reader := mockery.NewMockDateReader_metadata(t)
	reader.EXPECT().CaptureDate(mock.Anything, f.src("test2.jpg")).Return(want, true).Once()

	imp, err := importer.New(importer.Options{
		Sources:     []string{f.src("test2.jpg")},
		Destination: f.destDir,
		Reader:      reader,
	})
	require.NoError(t, err)

	got, err := imp.ResolveCaptureDate(testutils.Context(t), f.src("test2.jpg"))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestEnsureDateFolder(t *testing.T) {
	f := newFixture(t)
	ctx := testutils.Context(t)

	var buf bytes.Buffer
	imp, err := importer.New(importer.Options{
		Sources:     []string{f.sourceDir},
		Destination: f.destDir,
		Reporter:    status.New(&buf),
	})
	require.NoError(t, err)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	folder, err := imp.EnsureDateFolder(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, f.dest("2024-03-15"), folder)
	assert.DirExists(t, folder)

	again, err := imp.EnsureDateFolder(ctx, date.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, folder, again)

	assert.Equal(t, "Created directory: "+folder+"\n", buf.String(), "notice should only be printed on creation")
}

func TestEnsureDateFolderZeroPads(t *testing.T) {
	f := newFixture(t)

	imp, err := importer.New(importer.Options{
		Sources:     []string{f.sourceDir},
		Destination: f.destDir,
		Reporter:    status.New(nil),
	})
	require.NoError(t, err)

	folder, err := imp.EnsureDateFolder(testutils.Context(t), time.Date(987, 1, 5, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "0987-01-05", filepath.Base(folder))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		opts        importer.Options
		errContains string
	}{
		{
			name:        "no_sources",
			opts:        importer.Options{Destination: "out"},
			errContains: "at least one source",
		},
		{
			name:        "no_destination",
			opts:        importer.Options{Sources: []string{"*.jpg"}},
			errContains: "destination is required",
		},
		{
			name: "invalid_config",
			opts: importer.Options{
				Sources:     []string{"*.jpg"},
				Destination: "out",
				Config:      &config.Config{ExifFields: []string{"Flash"}},
			},
			errContains: "validating config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
