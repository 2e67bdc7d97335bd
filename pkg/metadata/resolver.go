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
	"time"

	"github.com/djherbis/times"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Source records where a capture date came from
type Source int

const (
	SourceUnknown Source = iota
	SourceExif           // embedded image metadata
	SourceModTime        // file last-modified time
)

// String returns a string representation of Source
func (s Source) String() string {
	switch s {
	case SourceExif:
		return "exif"
	case SourceModTime:
		return "mtime"
	default:
		return "unknown"
	}
}

// 🕰️ Resolver picks the capture date of a file: the embedded date when the
// reader finds one, the file's modification time otherwise.
type Resolver struct {
	reader DateReader
}

// 🏭 NewResolver creates a resolver. A nil reader always falls back to mtime.
func NewResolver(reader DateReader) *Resolver {
	return &Resolver{reader: reader}
}

// 🔍 Resolve returns the capture date of path and where it came from.
// The only error is path not being stat-able, which means the file is gone.
func (r *Resolver) Resolve(ctx context.Context, path string) (time.Time, Source, error) {
	if r.reader != nil {
		if t, ok := r.reader.CaptureDate(ctx, path); ok {
			return t, SourceExif, nil
		}
	}

	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, SourceUnknown, errors.Errorf("reading file times: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Time("date", ts.ModTime()).Msg("using modification time")
	return ts.ModTime(), SourceModTime, nil
}
