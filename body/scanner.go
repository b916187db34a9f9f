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

package body

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

var errInvalidUTF8 = errors.New("invalid utf-8 sequence")

// ScannerOptions are options for scanning entries in a decompressed block.
type ScannerOptions struct {
	// Encoding is the text encoding of entry payloads. A nil Encoding means
	// UTF-8.
	Encoding encoding.Encoding
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{}

// Entry is one length-prefixed entry within a decompressed block.
type Entry struct {
	// Offset is the offset of the entry's length prefix within the
	// decompressed block.
	Offset int64

	// Text is the entry's decoded text.
	Text string
}

// Scanner scans the entries of one decompressed block buffer from start to
// end. A Scanner only reads the in-memory buffer and never touches the
// file; re-scanning a block is done by constructing a new Scanner over the
// same buffer.
type Scanner struct {
	buf   []byte
	pos   int
	dec   *encoding.Decoder
	entry *Entry
	err   error
}

// NewScanner returns a new Scanner over the decompressed block buffer buf.
func NewScanner(buf []byte, options *ScannerOptions) *Scanner {
	if options == nil {
		options = DefaultScannerOptions
	}
	s := &Scanner{
		buf: buf,
	}
	if options.Encoding != nil {
		s.dec = options.Encoding.NewDecoder()
	}
	return s
}

// Scan advances the scanner to the next entry. It returns false when the
// scan stops, either by reaching the end of the block or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.buf) {
		return false
	}

	start := s.pos
	if s.pos+entryHeaderSize > len(s.buf) {
		s.err = fmt.Errorf("%w: truncated entry header at offset %d", ErrDataCorruption, start)
		return false
	}
	length := int(binary.LittleEndian.Uint32(s.buf[s.pos:]))
	s.pos += entryHeaderSize

	if s.pos+length > len(s.buf) {
		s.err = fmt.Errorf("%w: entry at offset %d overruns block", ErrDataCorruption, start)
		return false
	}
	payload := s.buf[s.pos : s.pos+length]
	s.pos += length

	text, err := s.decode(payload)
	if err != nil {
		s.err = &DecodeError{
			Offset: int64(start),
			Buf:    s.buf,
			cause:  err,
		}
		return false
	}

	s.entry = &Entry{
		Offset: int64(start),
		Text:   text,
	}
	return true
}

// Entry returns the last entry read by Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first error encountered. Undecodable payloads surface as
// a *DecodeError wrapping ErrDecode.
func (s *Scanner) Err() error {
	return s.err
}

// decode decodes an entry payload with the configured encoding.
func (s *Scanner) decode(payload []byte) (string, error) {
	if s.dec == nil {
		if !utf8.Valid(payload) {
			return "", errInvalidUTF8
		}
		return string(payload), nil
	}
	b, err := s.dec.Bytes(payload)
	if err != nil {
		return "", fmt.Errorf("decoding payload: %w", err)
	}
	return string(b), nil
}
