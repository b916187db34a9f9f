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
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

// maxBlockLength is a sanity ceiling on the compressed length of a single
// block. A misparsed chain yields garbage headers; refusing huge reads
// surfaces the misparse instead of a giant bogus allocation.
const maxBlockLength = 100_000_000

// Options are options for reading a dictionary body.
type Options struct {
	// Encoding is the text encoding of entry payloads. A nil Encoding means
	// UTF-8.
	Encoding encoding.Encoding
}

// DefaultOptions is the default options for a Body.
var DefaultOptions = &Options{}

// BlockOffset is the stable address of one entry: the index of its block
// and the offset of its length prefix within the decompressed block.
type BlockOffset struct {
	// Block is the block index.
	Block int

	// Offset is the entry's offset within the decompressed block.
	Offset int64
}

// Body reads a block-compressed dictionary body.
//
// The underlying reader and its position are shared state. Every operation
// that seeks or reads the reader holds a single mutex for its duration.
// Operations over already-decompressed buffers do not take the mutex. The
// block-position table is populated under the mutex exactly once and is
// read-only afterwards.
type Body struct {
	r      io.ReadSeeker
	closer io.Closer

	encoding encoding.Encoding

	streamLength uint32
	blockCount   int

	// mu guards r and blockPos.
	mu       sync.Mutex
	blockPos map[int]int64
}

// New returns a new Body reading from r. The container header is read and
// validated immediately. The Body takes ownership of r; if r implements
// io.Closer it is closed by the Body's Close method.
func New(r io.ReadSeeker, options *Options) (*Body, error) {
	if options == nil {
		options = DefaultOptions
	}
	b := &Body{
		r:        r,
		encoding: options.Encoding,
	}
	if c, ok := r.(io.Closer); ok {
		b.closer = c
	}
	if err := b.readContainerHeader(); err != nil {
		return nil, err
	}
	return b, nil
}

// Open opens the body file at path.
func Open(path string, options *Options) (*Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	b, err := New(f, options)
	if err != nil {
		f.Close()
		return nil, err
	}
	return b, nil
}

// readContainerHeader reads and validates the container header and seeds
// the block-position table with block 0, which starts immediately after
// the header.
func (b *Body) readContainerHeader() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking container header: %w", err)
	}
	buf := make([]byte, ContainerHeaderSize)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return fmt.Errorf("%w: reading container header: %v", ErrFormat, err)
	}

	h := parseContainerHeader(buf)
	logrus.Debugf("body header: stream length %d check %#x block count %d",
		h.StreamLength, h.Check, h.BlockCount)
	if !h.Valid() {
		return fmt.Errorf("%w: header check %#x", ErrFormat, h.Check)
	}

	b.streamLength = h.StreamLength
	b.blockCount = int(h.BlockCount)
	b.blockPos = map[int]int64{0: ContainerHeaderSize}
	return nil
}

// BlockCount returns the number of blocks in the container.
func (b *Body) BlockCount() int {
	return b.blockCount
}

// StreamLength returns the stream length recorded in the container header.
func (b *Body) StreamLength() uint32 {
	return b.streamLength
}

// ReadBlockHeader seeks to the block at index and reads its header. It
// returns the header and the derived absolute offset of the next block's
// header. Block positions are discovered on first use.
func (b *Body) ReadBlockHeader(index int) (*BlockHeader, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.seekBlock(index); err != nil {
		return nil, 0, err
	}
	return b.readBlockHeader()
}

// readBlockHeader reads a block header at the current position and derives
// the absolute offset of the next block. The caller must hold b.mu.
func (b *Body) readBlockHeader() (*BlockHeader, int64, error) {
	buf := make([]byte, BlockHeaderSize)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return nil, 0, fmt.Errorf("%w: reading block header: %v", ErrFormat, err)
	}
	h := parseBlockHeader(buf)

	pos, err := b.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, fmt.Errorf("getting position: %w", err)
	}
	next := h.NextOffset(pos)

	logrus.Debugf("block header: next %#x (raw %#x) length %#x unpacked %#x",
		next, h.NextBlock, h.BlockLength, h.UnpackedLength)
	if h.BlockLength > maxBlockLength {
		return nil, 0, fmt.Errorf("%w: unexpected block length %d", ErrDataCorruption, h.BlockLength)
	}

	return h, next, nil
}

// ReadBlock reads and decompresses the block at index.
func (b *Body) ReadBlock(index int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readBlock(index)
}

// readBlock reads and decompresses the block at index. The caller must
// hold b.mu.
func (b *Body) readBlock(index int) ([]byte, error) {
	if err := b.seekBlock(index); err != nil {
		return nil, err
	}
	h, _, err := b.readBlockHeader()
	if err != nil {
		return nil, err
	}
	return b.readBlockPayload(h)
}

// readBlockPayload reads and decompresses a block payload. The caller must
// hold b.mu and the position must be at the start of the compressed
// payload, immediately after its header.
func (b *Body) readBlockPayload(h *BlockHeader) ([]byte, error) {
	buf := make([]byte, h.BlockLength)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading block payload: %v", ErrDataCorruption, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataCorruption, err)
	}
	defer zr.Close()

	unpacked, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing block: %v", ErrDataCorruption, err)
	}
	if len(unpacked) != int(h.UnpackedLength) {
		return nil, fmt.Errorf("%w: unpacked length %#x, expected %#x",
			ErrDataCorruption, len(unpacked), h.UnpackedLength)
	}
	return unpacked, nil
}

// DiscoverBlockPositions walks the block chain from block 0 and records
// the absolute offset of every block header. The walk reads only headers,
// never payloads. It is idempotent; once the table holds more than one
// entry later calls perform no file reads.
func (b *Body) DiscoverBlockPositions() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.discoverBlockPositions()
}

// discoverBlockPositions walks the block chain. The caller must hold b.mu.
func (b *Body) discoverBlockPositions() error {
	if len(b.blockPos) > 1 || b.blockCount <= 1 {
		return nil
	}

	pos := b.blockPos[0]
	if _, err := b.r.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seeking block 0: %w", err)
	}
	for i := 0; i < b.blockCount; i++ {
		b.blockPos[i] = pos
		logrus.Debugf("block %d at %#x", i, pos)
		_, next, err := b.readBlockHeader()
		if err != nil {
			return err
		}
		if _, err := b.r.Seek(next, io.SeekStart); err != nil {
			return fmt.Errorf("seeking block %d: %w", i+1, err)
		}
		pos = next
	}
	return nil
}

// SeekBlock positions the reader at the header of the block at index,
// discovering block positions first if needed.
func (b *Body) SeekBlock(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seekBlock(index)
}

// seekBlock positions the reader at the block at index. The caller must
// hold b.mu.
func (b *Body) seekBlock(index int) error {
	if index < 0 || index >= b.blockCount {
		return fmt.Errorf("%w: %d", ErrBlockRange, index)
	}
	if err := b.discoverBlockPositions(); err != nil {
		return err
	}
	pos, ok := b.blockPos[index]
	if !ok {
		return fmt.Errorf("%w: %d", ErrBlockRange, index)
	}
	if _, err := b.r.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seeking block %d: %w", index, err)
	}
	return nil
}

// ReadEntryAt reads the single entry at off, decompressing only that
// entry's block.
func (b *Body) ReadEntryAt(off BlockOffset) (*Entry, error) {
	b.mu.Lock()
	buf, err := b.readBlock(off.Block)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if off.Offset < 0 || off.Offset >= int64(len(buf)) {
		return nil, fmt.Errorf("%w: entry offset %d in block %d", ErrBlockRange, off.Offset, off.Block)
	}

	s := NewScanner(buf[off.Offset:], &ScannerOptions{Encoding: b.encoding})
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: no entry at offset %d in block %d", ErrDataCorruption, off.Offset, off.Block)
	}

	e := s.Entry()
	// Scanner offsets are relative to the sliced buffer.
	e.Offset = off.Offset
	return e, nil
}

// WalkFunc is called for each entry during a Walk. Returning an error
// stops the walk.
type WalkFunc func(off BlockOffset, text string) error

// Walk streams every entry in the container in block order, decompressing
// one block at a time. This is the single full-container traversal used
// for both enumeration and index building. The mutex is held per block
// read and released while the decompressed buffer is scanned.
func (b *Body) Walk(fn WalkFunc) error {
	for i := 0; i < b.blockCount; i++ {
		buf, err := b.ReadBlock(i)
		if err != nil {
			return err
		}

		s := NewScanner(buf, &ScannerOptions{Encoding: b.encoding})
		for s.Scan() {
			e := s.Entry()
			if err := fn(BlockOffset{Block: i, Offset: e.Offset}, e.Text); err != nil {
				return err
			}
		}
		if err := s.Err(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

// Close closes the underlying reader.
func (b *Body) Close() error {
	if b.closer == nil {
		return nil
	}
	if err := b.closer.Close(); err != nil {
		return fmt.Errorf("closing body: %w", err)
	}
	return nil
}
