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

// Package body implements reading Apple dictionary body files.
//
// A body file (usually named Body.data) starts with a fixed 0x60 byte
// container header followed by a chain of compressed blocks. Each block is a
// fixed 0x0c byte block header followed by a zlib compressed payload. The
// decompressed payload is a concatenation of entries, each a 32-bit length
// prefix followed by that many bytes of encoded entry text.
//
// The file carries no index of its own. Blocks are located by walking the
// chain of block headers from block 0, and entry titles are discovered by
// scanning decompressed block contents.
//
// All integers in the file are little-endian and structures are byte-packed.
package body
