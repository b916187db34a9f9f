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
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-appledict/body"
)

// makeBlock builds a decompressed block buffer from entry payloads.
func makeBlock(entries ...string) []byte {
	var buf []byte
	for _, e := range entries {
		l := make([]byte, 4)
		binary.LittleEndian.PutUint32(l, uint32(len(e)))
		buf = append(buf, l...)
		buf = append(buf, e...)
	}
	return buf
}

func scanAll(t *testing.T, s *body.Scanner) []*body.Entry {
	t.Helper()

	var entries []*body.Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Scanner.Err: %v", err)
	}
	return entries
}

// TestScanner_Scan tests scanning entries from block buffers.
func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		buf      []byte
		options  *body.ScannerOptions
		expected []*body.Entry
	}{
		{
			name: "single entry",
			buf:  makeBlock("hoge"),
			expected: []*body.Entry{
				{Offset: 0, Text: "hoge"},
			},
		},
		{
			name: "multiple entries",
			buf:  makeBlock("hoge", "fuga", "x"),
			expected: []*body.Entry{
				{Offset: 0, Text: "hoge"},
				{Offset: 8, Text: "fuga"},
				{Offset: 16, Text: "x"},
			},
		},
		{
			name: "empty entry",
			buf:  makeBlock("", "hoge"),
			expected: []*body.Entry{
				{Offset: 0, Text: ""},
				{Offset: 4, Text: "hoge"},
			},
		},
		{
			name:     "empty buffer",
			buf:      nil,
			expected: nil,
		},
		{
			name: "unicode",
			buf:  makeBlock("ユニコード"),
			expected: []*body.Entry{
				{Offset: 0, Text: "ユニコード"},
			},
		},
		{
			name: "latin-1",
			buf:  makeBlock("caf\xe9"),
			options: &body.ScannerOptions{
				Encoding: charmap.ISO8859_1,
			},
			expected: []*body.Entry{
				{Offset: 0, Text: "café"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test := test
			t.Parallel()

			entries := scanAll(t, body.NewScanner(test.buf, test.options))
			if diff := cmp.Diff(test.expected, entries); diff != "" {
				t.Fatalf("Scanner entries (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestScanner_restart tests that re-scanning the same buffer reproduces the
// same entries.
func TestScanner_restart(t *testing.T) {
	t.Parallel()

	buf := makeBlock("hoge", "fuga")

	first := scanAll(t, body.NewScanner(buf, nil))
	second := scanAll(t, body.NewScanner(buf, nil))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-scan entries (-want, +got):\n%s", diff)
	}
}

// TestScanner_decodeError tests that undecodable payloads surface a
// DecodeError distinguishable from a clean end of block.
func TestScanner_decodeError(t *testing.T) {
	t.Parallel()

	buf := makeBlock("hoge", "\xff\xfe")

	s := body.NewScanner(buf, nil)
	if !s.Scan() {
		t.Fatalf("Scan: %v", s.Err())
	}
	if s.Scan() {
		t.Fatalf("Scan: expected failure, got %q", s.Entry().Text)
	}

	err := s.Err()
	if !errors.Is(err, body.ErrDecode) {
		t.Fatalf("Scanner.Err: got %v, want %v", err, body.ErrDecode)
	}

	var decodeErr *body.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Scanner.Err: got %T, want *body.DecodeError", err)
	}
	if got, want := decodeErr.Offset, int64(8); got != want {
		t.Fatalf("DecodeError.Offset: got %d, want %d", got, want)
	}
	if diff := cmp.Diff(buf, decodeErr.Buf); diff != "" {
		t.Fatalf("DecodeError.Buf (-want, +got):\n%s", diff)
	}
}

// TestScanner_corruption tests truncated entry framing.
func TestScanner_corruption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{
			name: "truncated entry header",
			buf:  []byte{0x01, 0x00},
		},
		{
			name: "entry overruns block",
			buf:  []byte{0x10, 0x00, 0x00, 0x00, 'h', 'i'},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test := test
			t.Parallel()

			s := body.NewScanner(test.buf, nil)
			if s.Scan() {
				t.Fatalf("Scan: expected failure, got %q", s.Entry().Text)
			}
			if err := s.Err(); !errors.Is(err, body.ErrDataCorruption) {
				t.Fatalf("Scanner.Err: got %v, want %v", err, body.ErrDataCorruption)
			}
		})
	}
}
