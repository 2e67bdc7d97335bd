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
	"io"
	"io/fs"
	"os"

	"github.com/djherbis/times"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var errDestinationExists = errors.New("destination file already exists")

// 📄 copyFile copies src to dst without ever replacing an existing dst.
// On failure a partially written dst is removed.
func copyFile(ctx context.Context, src, dst string, preserveTimes bool) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errDestinationExists
		}
		return errors.Errorf("creating destination file: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(dst); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			zerolog.Ctx(ctx).Warn().Err(rmErr).Str("destination", dst).Msg("removing partial copy")
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err = out.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	// umask may have narrowed the mode passed to OpenFile
	if err = os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting destination permissions: %w", err)
	}

	if preserveTimes {
		ts := times.Get(info)
		if err = os.Chtimes(dst, ts.AccessTime(), ts.ModTime()); err != nil {
			return errors.Errorf("preserving file times: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("destination", dst).Int64("bytes", n).Msg("copied file content")
	return nil
}
