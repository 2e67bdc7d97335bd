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

// Package source turns user-supplied patterns into the list of image files to import.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🔍 Expand resolves patterns into existing regular files accepted by accept.
// A nil accept keeps every regular file. Order is pattern order, then match
// order within a pattern; a file reached by several patterns appears once.
// Dot-prefixed names are only matched by a pattern segment that starts with
// a dot, as in shell globbing.
func Expand(ctx context.Context, patterns []string, accept func(path string) bool) []string {
	logger := zerolog.Ctx(ctx)

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", pattern).Msg("invalid source pattern")
			continue
		}
		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded source pattern")

		for _, match := range matches {
			key := match
			if abs, err := filepath.Abs(match); err == nil {
				key = abs
			}
			if seen[key] {
				logger.Debug().Str("path", match).Str("pattern", pattern).Msg("skipping duplicate match")
				continue
			}

			if hiddenByWildcard(pattern, match) {
				logger.Debug().Str("path", match).Str("pattern", pattern).Msg("skipping hidden match")
				continue
			}

			// Stat follows symlinks
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				logger.Debug().Str("path", match).Msg("skipping non-regular match")
				continue
			}

			if accept != nil && !accept(match) {
				logger.Debug().Str("path", match).Msg("skipping filtered match")
				continue
			}

			seen[key] = true
			files = append(files, match)
		}
	}

	return files
}

// hiddenByWildcard reports whether match holds a dot-prefixed name that no
// dot-prefixed segment of pattern spells out. Wildcards never match such
// names, so `*.jpg` skips the `._IMG_0001.jpg` files macOS leaves on cards.
func hiddenByWildcard(pattern, match string) bool {
	segments := strings.Split(filepath.ToSlash(pattern), "/")
	for _, name := range strings.Split(filepath.ToSlash(match), "/") {
		if name == "." || name == ".." || !strings.HasPrefix(name, ".") {
			continue
		}

		explicit := false
		for _, seg := range segments {
			if !strings.HasPrefix(seg, ".") {
				continue
			}
			if ok, _ := doublestar.Match(seg, name); ok {
				explicit = true
				break
			}
		}
		if !explicit {
			return true
		}
	}
	return false
}

// 🧹 Filter decides whether a matched file is a candidate image
type Filter struct {
	Extensions []string // normalized, e.g. ".jpg"
	Ignore     []string // doublestar patterns
}

// Accept reports whether path has an allowed extension and matches no ignore pattern
func (f Filter) Accept(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}

	allowed := false
	for _, e := range f.Extensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range f.Ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return false
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return false
		}
	}

	return true
}
