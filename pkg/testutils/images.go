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

// Package testutils builds image fixtures for tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// EXIF tag ids written by the fixtures
const (
	tagDateTime          uint16 = 0x0132
	tagExifIFDPointer    uint16 = 0x8769
	tagDateTimeOriginal  uint16 = 0x9003
	tagDateTimeDigitized uint16 = 0x9004

	typeASCII uint16 = 2
	typeLong  uint16 = 4
)

// ifd0Fields live in the main IFD, everything else in the Exif sub-IFD
var ifd0Fields = map[string]uint16{
	"DateTime": tagDateTime,
}

var exifFields = map[string]uint16{
	"DateTimeOriginal":  tagDateTimeOriginal,
	"DateTimeDigitized": tagDateTimeDigitized,
}

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value uint32 // inline value or offset into the TIFF block
	data  []byte // out-of-line data, placed at value
}

// 🧪 Context returns a context carrying a logger that writes to the test log
func Context(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// 🧪 JPEG returns an encoded 8x8 JPEG. fields maps EXIF field names
// (DateTime, DateTimeOriginal, DateTimeDigitized) to raw values; with no
// fields the image carries no APP1 segment at all.
func JPEG(t *testing.T, fields map[string]string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil), "encoding jpeg")
	encoded := buf.Bytes()

	if len(fields) == 0 {
		return encoded
	}

	app1 := app1Segment(t, fields)

	// splice APP1 right after SOI
	out := make([]byte, 0, len(encoded)+len(app1))
	out = append(out, encoded[:2]...)
	out = append(out, app1...)
	out = append(out, encoded[2:]...)
	return out
}

// 🧪 WriteJPEG writes a JPEG fixture to dir/name and returns its path
func WriteJPEG(t *testing.T, dir, name string, fields map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating fixture dir")
	require.NoError(t, os.WriteFile(path, JPEG(t, fields), 0644), "writing jpeg fixture")
	return path
}

// 🧪 WriteFile writes content to dir/name with the given modification time
func WriteFile(t *testing.T, dir, name string, content []byte, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating fixture dir")
	require.NoError(t, os.WriteFile(path, content, 0644), "writing fixture")
	SetModTime(t, path, mtime)
	return path
}

// 🧪 SetModTime sets both access and modification time of path
func SetModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime), "setting fixture times")
}

// app1Segment builds FFE1 <len> "Exif\0\0" <little-endian TIFF>
func app1Segment(t *testing.T, fields map[string]string) []byte {
	t.Helper()

	var ifd0, sub []ifdEntry
	for name, val := range fields {
		data := append([]byte(val), 0)
		entry := ifdEntry{typ: typeASCII, count: uint32(len(data)), data: data}
		if len(data) <= 4 {
			// short values are stored inline in the entry
			inline := make([]byte, 4)
			copy(inline, data)
			entry.value = binary.LittleEndian.Uint32(inline)
			entry.data = nil
		}
		if tag, ok := ifd0Fields[name]; ok {
			entry.tag = tag
			ifd0 = append(ifd0, entry)
			continue
		}
		tag, ok := exifFields[name]
		require.True(t, ok, "unknown exif fixture field %q", name)
		entry.tag = tag
		sub = append(sub, entry)
	}

	ifdSize := func(n int) uint32 { return uint32(2 + 12*n + 4) }

	ifd0Count := len(ifd0)
	if len(sub) > 0 {
		ifd0Count++
	}

	const ifd0Offset = 8
	subOffset := ifd0Offset + ifdSize(ifd0Count)
	dataOffset := subOffset
	if len(sub) > 0 {
		dataOffset += ifdSize(len(sub))
	}

	if len(sub) > 0 {
		ifd0 = append(ifd0, ifdEntry{tag: tagExifIFDPointer, typ: typeLong, count: 1, value: subOffset})
	}

	// lay out out-of-line values after both directories
	var data []byte
	place := func(entries []ifdEntry) {
		for i := range entries {
			if entries[i].data == nil {
				continue
			}
			entries[i].value = dataOffset + uint32(len(data))
			data = append(data, entries[i].data...)
			if len(data)%2 == 1 {
				data = append(data, 0)
			}
		}
	}
	place(ifd0)
	place(sub)

	var tiff bytes.Buffer
	le := binary.LittleEndian
	tiff.WriteString("II")
	_ = binary.Write(&tiff, le, uint16(42))
	_ = binary.Write(&tiff, le, uint32(ifd0Offset))
	writeIFD(&tiff, ifd0)
	if len(sub) > 0 {
		writeIFD(&tiff, sub)
	}
	tiff.Write(data)

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	require.Less(t, len(payload)+2, 0xffff, "exif payload too large")

	var seg bytes.Buffer
	seg.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&seg, binary.BigEndian, uint16(len(payload)+2))
	seg.Write(payload)
	return seg.Bytes()
}

func writeIFD(buf *bytes.Buffer, entries []ifdEntry) {
	le := binary.LittleEndian
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	_ = binary.Write(buf, le, uint16(len(entries)))
	for _, e := range entries {
		_ = binary.Write(buf, le, e.tag)
		_ = binary.Write(buf, le, e.typ)
		_ = binary.Write(buf, le, e.count)
		_ = binary.Write(buf, le, e.value)
	}
	_ = binary.Write(buf, le, uint32(0))
}
