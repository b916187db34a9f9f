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

// Package appledict implements a library for reading Apple dictionary
// bundles in pure Go.
//
// Dictionary bundles are directories with a Contents directory holding:
//  1. A Body.data file that contains the dictionary's entry text in a
//     chain of zlib-compressed blocks.
//  2. An Info.plist file that contains metadata about the dictionary.
//  3. Other index and resource files which are not read by this library.
//
// The body file has no usable on-disk index, so entry titles are
// discovered by a single full scan of all blocks. The scan builds an
// in-memory index mapping each entry's title attribute to the location of
// its entry; lookups then re-read and decompress only the needed block.
package appledict
