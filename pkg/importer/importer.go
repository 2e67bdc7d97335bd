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

package importer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imageimporter/pkg/config"
	"github.com/walteh/imageimporter/pkg/metadata"
	"github.com/walteh/imageimporter/pkg/source"
	"github.com/walteh/imageimporter/pkg/status"
)

// DateFolderLayout names date folders, e.g. 2024-03-15
const DateFolderLayout = "2006-01-02"

// 🔧 Options contains configuration for the importer
type Options struct {
	// Sources are literal paths or glob patterns, processed in order
	Sources []string
	// Destination is the root the date folders are created under
	Destination string
	// Config defaults to config.Default()
	Config *config.Config
	// Reader defaults to an EXIF reader over Config.ExifFields
	Reader metadata.DateReader
	// Reporter defaults to a status.Manager writing to stdout
	Reporter status.Reporter
}

// 📦 Importer copies images into date folders under a destination root
type Importer struct {
	sources     []string
	destination string
	cfg         *config.Config
	resolver    *metadata.Resolver
	filter      source.Filter
	reporter    status.Reporter
}

// 🏭 New creates a new importer. It touches no files.
func New(opts Options) (*Importer, error) {
	if len(opts.Sources) == 0 {
		return nil, errors.Errorf("at least one source is required")
	}
	if opts.Destination == "" {
		return nil, errors.Errorf("destination is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	} else if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	reader := opts.Reader
	if reader == nil {
		exifReader, err := metadata.NewExifReader(cfg.ExifFields...)
		if err != nil {
			return nil, errors.Errorf("creating exif reader: %w", err)
		}
		reader = exifReader
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.New(os.Stdout)
	}

	return &Importer{
		sources:     opts.Sources,
		destination: opts.Destination,
		cfg:         cfg,
		resolver:    metadata.NewResolver(reader),
		filter:      source.Filter{Extensions: cfg.Extensions, Ignore: cfg.Ignore},
		reporter:    reporter,
	}, nil
}

// 🕰️ ResolveCaptureDate returns the embedded capture time of path, or its
// modification time when there is none. It fails only if path cannot be stat'd.
func (imp *Importer) ResolveCaptureDate(ctx context.Context, path string) (time.Time, error) {
	t, _, err := imp.resolver.Resolve(ctx, path)
	return t, err
}

// 📁 EnsureDateFolder returns the folder for date, creating it when missing.
// The creation notice is only reported when the folder did not exist.
func (imp *Importer) EnsureDateFolder(ctx context.Context, date time.Time) (string, error) {
	folder := filepath.Join(imp.destination, date.Format(DateFolderLayout))

	info, err := os.Stat(folder)
	switch {
	case err == nil && info.IsDir():
		return folder, nil
	case err == nil:
		return "", errors.Errorf("creating date folder: %s exists and is not a directory", folder)
	case !errors.Is(err, fs.ErrNotExist):
		return "", errors.Errorf("checking date folder: %w", err)
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", errors.Errorf("creating date folder: %w", err)
	}

	imp.reporter.CreatedFolder(ctx, folder)
	return folder, nil
}

// 🏃 ImportAll imports every file matched by the sources, one at a time.
// A failing file is recorded and the rest are still processed.
func (imp *Importer) ImportAll(ctx context.Context) []status.Record {
	logger := zerolog.Ctx(ctx)

	if err := imp.ensureDestination(ctx); err != nil {
		// every date folder will fail and be reported per file
		logger.Warn().Err(err).Str("destination", imp.destination).Msg("destination root unavailable")
	}

	files := source.Expand(ctx, imp.sources, imp.filter.Accept)
	logger.Debug().Int("files", len(files)).Msg("resolved source files")

	records := make([]status.Record, 0, len(files))
	for _, path := range files {
		rec := imp.importFile(ctx, path)
		imp.reporter.Track(ctx, rec)
		records = append(records, rec)
	}

	return records
}

func (imp *Importer) ensureDestination(ctx context.Context) error {
	info, err := os.Stat(imp.destination)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return errors.Errorf("%s exists and is not a directory", imp.destination)
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("checking destination: %w", err)
	}

	if err := os.MkdirAll(imp.destination, 0755); err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	imp.reporter.CreatedDestination(ctx, imp.destination)
	return nil
}

// importFile runs discovered -> dated -> foldered -> copied|skipped|failed for one file
func (imp *Importer) importFile(ctx context.Context, path string) (rec status.Record) {
	rec = status.Record{Source: path, Name: filepath.Base(path)}
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	defer func() {
		if r := recover(); r != nil {
			rec.Outcome = status.OutcomeFailed
			rec.Err = errors.Errorf("unexpected panic: %v", r)
		}
	}()

	date, src, err := imp.resolver.Resolve(ctx, path)
	if err != nil {
		return failed(rec, err)
	}
	rec.CaptureDate = date
	rec.DateSource = src
	logger.Debug().Time("date", date).Stringer("source", src).Msg("resolved capture date")

	folder, err := imp.EnsureDateFolder(ctx, date)
	if err != nil {
		return failed(rec, err)
	}
	rec.Folder = folder
	rec.Destination = filepath.Join(folder, rec.Name)

	if _, err := os.Lstat(rec.Destination); err == nil {
		rec.Outcome = status.OutcomeSkipped
		return rec
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failed(rec, errors.Errorf("checking destination file: %w", err))
	}

	err = copyFile(ctx, path, rec.Destination, imp.cfg.ShouldPreserveTimes())
	switch {
	case errors.Is(err, errDestinationExists):
		logger.Debug().Str("destination", rec.Destination).Msg("destination appeared before copy")
		rec.Outcome = status.OutcomeSkipped
	case err != nil:
		return failed(rec, err)
	default:
		rec.Outcome = status.OutcomeCopied
	}

	return rec
}

func failed(rec status.Record, err error) status.Record {
	rec.Outcome = status.OutcomeFailed
	rec.Err = err
	return rec
}
