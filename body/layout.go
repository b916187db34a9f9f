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
)

const (
	// ContainerHeaderSize is the size of the container header at file
	// offset 0.
	ContainerHeaderSize = 0x60

	// BlockHeaderSize is the size of the header preceding each block's
	// compressed payload.
	BlockHeaderSize = 0x0c

	// entryHeaderSize is the size of the length prefix preceding each entry
	// in a decompressed block.
	entryHeaderSize = 4

	// headerCheck is the expected value of the container header's check
	// field.
	headerCheck = 0x20

	// Field offsets within the container header.
	streamLengthOffset = 0x40
	checkOffset        = 0x4c
	blockCountOffset   = 0x54

	// unpackedLengthOffset is the offset of the UnpackedLength field within
	// the block header. The next-block derivation depends on it.
	unpackedLengthOffset = 0x08
)

// ContainerHeader is the fixed-size header at the start of a body file.
type ContainerHeader struct {
	// StreamLength is the total length of the body stream.
	StreamLength uint32

	// Check is the header check value. It must equal 0x20 for the container
	// to be valid.
	Check uint32

	// BlockCount is the number of compressed blocks in the container.
	BlockCount uint32
}

// parseContainerHeader decodes a container header. b must be at least
// ContainerHeaderSize bytes.
func parseContainerHeader(b []byte) *ContainerHeader {
	return &ContainerHeader{
		StreamLength: binary.LittleEndian.Uint32(b[streamLengthOffset:]),
		Check:        binary.LittleEndian.Uint32(b[checkOffset:]),
		BlockCount:   binary.LittleEndian.Uint32(b[blockCountOffset:]),
	}
}

// Valid reports whether the header check matches the expected value.
func (h *ContainerHeader) Valid() bool {
	return h.Check == headerCheck
}

// BlockHeader is the fixed-size header preceding each block's compressed
// payload.
type BlockHeader struct {
	// NextBlock is the raw pointer to the next block. It is not an absolute
	// offset; use NextOffset to resolve it.
	NextBlock uint32

	// BlockLength is the compressed length of the block's payload on disk.
	BlockLength uint32

	// UnpackedLength is the expected decompressed length of the block's
	// payload.
	UnpackedLength uint32
}

// parseBlockHeader decodes a block header. b must be at least
// BlockHeaderSize bytes.
func parseBlockHeader(b []byte) *BlockHeader {
	return &BlockHeader{
		NextBlock:      binary.LittleEndian.Uint32(b),
		BlockLength:    binary.LittleEndian.Uint32(b[4:]),
		UnpackedLength: binary.LittleEndian.Uint32(b[8:]),
	}
}

// NextOffset derives the absolute file offset of the next block's header
// from pos, the file position immediately after reading this header. The
// raw NextBlock pointer must be corrected by the offset of the
// UnpackedLength field within the block header. The correction is a quirk
// of the format; block chaining silently breaks without it.
func (h *BlockHeader) NextOffset(pos int64) int64 {
	return pos + int64(h.NextBlock) - unpackedLengthOffset
}
