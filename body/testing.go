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
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
)

// TestBlock is a block specification for MakeBody.
type TestBlock struct {
	// Entries are the entry payloads of the block. Payloads may contain
	// arbitrary bytes.
	Entries []string
}

// MakeBody builds a valid body container image containing the given
// blocks. The raw next-block pointer is the compressed payload length plus
// the offset of the UnpackedLength field so that the NextOffset derivation
// lands on the following block header.
func MakeBody(blocks []TestBlock) []byte {
	var chain []byte
	for _, blk := range blocks {
		var unpacked []byte
		for _, e := range blk.Entries {
			l := make([]byte, entryHeaderSize)
			binary.LittleEndian.PutUint32(l, uint32(len(e)))
			unpacked = append(unpacked, l...)
			unpacked = append(unpacked, e...)
		}

		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		_, _ = zw.Write(unpacked)
		_ = zw.Close()

		h := make([]byte, BlockHeaderSize)
		binary.LittleEndian.PutUint32(h, uint32(compressed.Len())+unpackedLengthOffset)
		binary.LittleEndian.PutUint32(h[4:], uint32(compressed.Len()))
		binary.LittleEndian.PutUint32(h[8:], uint32(len(unpacked)))

		chain = append(chain, h...)
		chain = append(chain, compressed.Bytes()...)
	}

	header := make([]byte, ContainerHeaderSize)
	binary.LittleEndian.PutUint32(header[streamLengthOffset:], uint32(ContainerHeaderSize+len(chain)))
	binary.LittleEndian.PutUint32(header[checkOffset:], headerCheck)
	binary.LittleEndian.PutUint32(header[blockCountOffset:], uint32(len(blocks)))

	return append(header, chain...)
}
