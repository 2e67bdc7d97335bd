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

package metadata

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"gitlab.com/tozd/go/errors"
)

// 📷 ExifTimeLayout is the date/time layout used by EXIF ASCII date tags
const ExifTimeLayout = "2006:01:02 15:04:05"

// 🔌 DateReader reads the embedded capture time of an image file.
// A reader never fails: anything that prevents it from producing a time
// (no metadata, unreadable file, malformed value) is reported as absent.
type DateReader interface {
	CaptureDate(ctx context.Context, path string) (time.Time, bool)
}

// dateFields are the EXIF fields that carry a full date and time
var dateFields = map[string]exif.FieldName{
	string(exif.DateTimeOriginal):  exif.DateTimeOriginal,
	string(exif.DateTimeDigitized): exif.DateTimeDigitized,
	string(exif.DateTime):          exif.DateTime,
}

// DefaultFields returns the EXIF fields consulted when none are configured,
// most specific first.
func DefaultFields() []string {
	return []string{
		string(exif.DateTimeOriginal),
		string(exif.DateTimeDigitized),
		string(exif.DateTime),
	}
}

// IsDateField reports whether name is an EXIF field ExifReader can read a capture time from
func IsDateField(name string) bool {
	_, ok := dateFields[name]
	return ok
}

// 📷 ExifReader reads capture times with goexif
type ExifReader struct {
	fields []exif.FieldName
}

// 🏭 NewExifReader creates a reader that consults the given fields in order.
// With no fields it falls back to DefaultFields.
func NewExifReader(fields ...string) (*ExifReader, error) {
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	r := &ExifReader{}
	for _, name := range fields {
		field, ok := dateFields[name]
		if !ok {
			return nil, errors.Errorf("unsupported exif date field %q", name)
		}
		r.fields = append(r.fields, field)
	}
	return r, nil
}

// 🔍 CaptureDate implements DateReader
func (r *ExifReader) CaptureDate(ctx context.Context, path string) (t time.Time, ok bool) {
	logger := zerolog.Ctx(ctx)

	// goexif can panic on truncated IFDs
	defer func() {
		if rec := recover(); rec != nil {
			logger.Debug().Str("path", path).Interface("panic", rec).Msg("exif decoder panicked")
			t, ok = time.Time{}, false
		}
	}()

	x, err := decode(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("no exif metadata")
		return time.Time{}, false
	}

	for _, field := range r.fields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			logger.Debug().Str("path", path).Str("field", string(field)).Err(err).Msg("exif date is not a string")
			continue
		}
		parsed, err := ParseExifTime(val)
		if err != nil {
			logger.Debug().Str("path", path).Str("field", string(field)).Err(err).Msg("malformed exif date")
			continue
		}
		logger.Debug().Str("path", path).Str("field", string(field)).Time("date", parsed).Msg("found exif capture date")
		return parsed, true
	}

	return time.Time{}, false
}

// decode opens path and decodes its EXIF block. Non-critical errors
// (a broken GPS or interop sub-IFD) still leave the main IFDs usable.
func decode(path string) (*exif.Exif, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, errors.Errorf("decoding exif: %w", err)
	}
	return x, nil
}

// ParseExifTime parses an EXIF date string ("2024:03:15 10:30:00") in local time.
// Trailing NULs and padding written by some cameras are ignored.
func ParseExifTime(val string) (time.Time, error) {
	val = strings.TrimSpace(strings.TrimRight(val, "\x00"))
	t, err := time.ParseInLocation(ExifTimeLayout, val, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("parsing exif time %q: %w", val, err)
	}
	return t, nil
}
