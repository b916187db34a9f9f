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
	"errors"
	"fmt"
)

// ErrFormat indicates that the container header or a block header failed
// validation and the container is unusable.
var ErrFormat = errors.New("invalid body format")

// ErrDataCorruption indicates that a block failed its integrity checks. The
// affected block is unreadable but other blocks remain independently
// readable.
var ErrDataCorruption = errors.New("data corruption")

// ErrDecode indicates that an entry payload could not be decoded with the
// configured text encoding.
var ErrDecode = errors.New("decoding entry")

// ErrBlockRange indicates a block index outside of 0..BlockCount-1.
var ErrBlockRange = errors.New("block index out of range")

// DecodeError reports an undecodable entry payload. It wraps ErrDecode and
// records the decompressed block buffer and the offset of the offending
// entry within it so the failure can be distinguished from a clean end of
// block.
type DecodeError struct {
	// Offset is the offset of the entry within the decompressed block.
	Offset int64

	// Buf is the decompressed block buffer containing the entry.
	Buf []byte

	cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("decoding entry at offset %d: %v", e.Offset, e.cause)
	}
	return fmt.Sprintf("decoding entry at offset %d", e.Offset)
}

// Unwrap returns ErrDecode so that callers can test for decode failures
// with errors.Is.
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}
