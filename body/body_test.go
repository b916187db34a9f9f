// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package body_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-appledict/body"
	"github.com/ianlewis/go-appledict/internal/testutil"
)

// walkEntry is a collected Walk result.
type walkEntry struct {
	Off  body.BlockOffset
	Text string
}

func walkAll(t *testing.T, b *body.Body) []walkEntry {
	t.Helper()

	var entries []walkEntry
	err := b.Walk(func(off body.BlockOffset, text string) error {
		entries = append(entries, walkEntry{Off: off, Text: text})
		return nil
	})
	if err != nil {
		t.Fatalf("Body.Walk: %v", err)
	}
	return entries
}

// TestNew tests opening and validating containers.
func TestNew(t *testing.T) {
	t.Parallel()

	valid := body.MakeBody([]body.TestBlock{
		{Entries: []string{"hoge"}},
	})

	badCheck := bytes.Clone(valid)
	badCheck[0x4c] = 0x21

	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{
			name: "valid",
			data: valid,
		},
		{
			name: "empty container",
			data: body.MakeBody(nil),
		},
		{
			name:     "bad check",
			data:     badCheck,
			expected: body.ErrFormat,
		},
		{
			name:     "short file",
			data:     valid[:0x30],
			expected: body.ErrFormat,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test := test
			t.Parallel()

			_, err := body.New(bytes.NewReader(test.data), nil)
			if !errors.Is(err, test.expected) {
				t.Fatalf("New: got %v, want %v", err, test.expected)
			}
		})
	}
}

// TestBody_ReadBlock tests block decompression and its integrity checks.
func TestBody_ReadBlock(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		data := body.MakeBody([]body.TestBlock{
			{Entries: []string{"hoge", "fuga"}},
		})
		b, err := body.New(bytes.NewReader(data), nil)
		if err != nil {
			t.Fatal(err)
		}

		buf, err := b.ReadBlock(0)
		if err != nil {
			t.Fatal(err)
		}

		expected := []byte{
			0x04, 0x00, 0x00, 0x00, 'h', 'o', 'g', 'e',
			0x04, 0x00, 0x00, 0x00, 'f', 'u', 'g', 'a',
		}
		if diff := cmp.Diff(expected, buf); diff != "" {
			t.Fatalf("Body.ReadBlock (-want, +got):\n%s", diff)
		}
	})

	t.Run("corrupted payload", func(t *testing.T) {
		t.Parallel()

		data := body.MakeBody([]body.TestBlock{
			{Entries: []string{"hoge", "fuga"}},
		})
		// Flip a byte inside the compressed payload.
		data[body.ContainerHeaderSize+body.BlockHeaderSize+5] ^= 0xff

		b, err := body.New(bytes.NewReader(data), nil)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := b.ReadBlock(0); !errors.Is(err, body.ErrDataCorruption) {
			t.Fatalf("Body.ReadBlock: got %v, want %v", err, body.ErrDataCorruption)
		}
	})

	t.Run("unpacked length mismatch", func(t *testing.T) {
		t.Parallel()

		data := body.MakeBody([]body.TestBlock{
			{Entries: []string{"hoge", "fuga"}},
		})
		// Bump the expected decompressed length.
		data[body.ContainerHeaderSize+0x08]++

		b, err := body.New(bytes.NewReader(data), nil)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := b.ReadBlock(0); !errors.Is(err, body.ErrDataCorruption) {
			t.Fatalf("Body.ReadBlock: got %v, want %v", err, body.ErrDataCorruption)
		}
	})

	t.Run("block length ceiling", func(t *testing.T) {
		t.Parallel()

		data := body.MakeBody([]body.TestBlock{
			{Entries: []string{"hoge"}},
		})
		binary.LittleEndian.PutUint32(data[body.ContainerHeaderSize+0x04:], 0xffffffff)

		b, err := body.New(bytes.NewReader(data), nil)
		if err != nil {
			t.Fatal(err)
		}

		if _, _, err := b.ReadBlockHeader(0); !errors.Is(err, body.ErrDataCorruption) {
			t.Fatalf("Body.ReadBlockHeader: got %v, want %v", err, body.ErrDataCorruption)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		data := body.MakeBody([]body.TestBlock{
			{Entries: []string{"hoge"}},
		})
		b, err := body.New(bytes.NewReader(data), nil)
		if err != nil {
			t.Fatal(err)
		}

		for _, index := range []int{-1, 1, 100} {
			if _, err := b.ReadBlock(index); !errors.Is(err, body.ErrBlockRange) {
				t.Fatalf("Body.ReadBlock(%d): got %v, want %v", index, err, body.ErrBlockRange)
			}
		}
	})
}

// TestBody_DiscoverBlockPositions tests that discovery walks the chain once
// and is idempotent.
func TestBody_DiscoverBlockPositions(t *testing.T) {
	t.Parallel()

	data := body.MakeBody([]body.TestBlock{
		{Entries: []string{"block zero"}},
		{Entries: []string{"block one"}},
		{Entries: []string{"block two"}},
	})

	cr := &testutil.CountingReadSeeker{R: bytes.NewReader(data)}
	b, err := body.New(cr, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.DiscoverBlockPositions(); err != nil {
		t.Fatal(err)
	}
	reads, seeks := cr.Reads, cr.Seeks

	if err := b.DiscoverBlockPositions(); err != nil {
		t.Fatal(err)
	}
	if cr.Reads != reads || cr.Seeks != seeks {
		t.Fatalf("DiscoverBlockPositions not idempotent: reads %d->%d seeks %d->%d",
			reads, cr.Reads, seeks, cr.Seeks)
	}

	// Positions must be usable for random access.
	buf, err := b.ReadBlock(2)
	if err != nil {
		t.Fatal(err)
	}
	s := body.NewScanner(buf, nil)
	if !s.Scan() {
		t.Fatalf("Scan: %v", s.Err())
	}
	if got, want := s.Entry().Text, "block two"; got != want {
		t.Fatalf("block 2 entry: got %q, want %q", got, want)
	}
}

// TestBody_Walk tests full enumeration of all blocks and entries.
func TestBody_Walk(t *testing.T) {
	t.Parallel()

	data := body.MakeBody([]body.TestBlock{
		{Entries: []string{"hoge", "fuga"}},
		{Entries: []string{"piyo"}},
	})
	b, err := body.New(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}

	expected := []walkEntry{
		{Off: body.BlockOffset{Block: 0, Offset: 0}, Text: "hoge"},
		{Off: body.BlockOffset{Block: 0, Offset: 8}, Text: "fuga"},
		{Off: body.BlockOffset{Block: 1, Offset: 0}, Text: "piyo"},
	}
	if diff := cmp.Diff(expected, walkAll(t, b)); diff != "" {
		t.Fatalf("Body.Walk (-want, +got):\n%s", diff)
	}
}

// TestBody_ReadEntryAt tests that entries resolved by address match the
// text observed during a full walk.
func TestBody_ReadEntryAt(t *testing.T) {
	t.Parallel()

	data := body.MakeBody([]body.TestBlock{
		{Entries: []string{"hoge", "fuga"}},
		{Entries: []string{"piyo", "hogera"}},
	})
	b, err := body.New(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, we := range walkAll(t, b) {
		e, err := b.ReadEntryAt(we.Off)
		if err != nil {
			t.Fatalf("Body.ReadEntryAt(%+v): %v", we.Off, err)
		}
		if diff := cmp.Diff(&body.Entry{Offset: we.Off.Offset, Text: we.Text}, e); diff != "" {
			t.Fatalf("Body.ReadEntryAt(%+v) (-want, +got):\n%s", we.Off, diff)
		}
	}

	// An offset past the end of the decompressed block is out of range.
	if _, err := b.ReadEntryAt(body.BlockOffset{Block: 0, Offset: 1000}); !errors.Is(err, body.ErrBlockRange) {
		t.Fatalf("Body.ReadEntryAt: got %v, want %v", err, body.ErrBlockRange)
	}
}

// TestBody_encoding tests walking a container with a non-UTF-8 encoding.
func TestBody_encoding(t *testing.T) {
	t.Parallel()

	data := body.MakeBody([]body.TestBlock{
		{Entries: []string{"caf\xe9"}},
	})
	b, err := body.New(bytes.NewReader(data), &body.Options{
		Encoding: charmap.ISO8859_1,
	})
	if err != nil {
		t.Fatal(err)
	}

	expected := []walkEntry{
		{Off: body.BlockOffset{Block: 0, Offset: 0}, Text: "café"},
	}
	if diff := cmp.Diff(expected, walkAll(t, b)); diff != "" {
		t.Fatalf("Body.Walk (-want, +got):\n%s", diff)
	}
}
