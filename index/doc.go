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

// Package index implements the in-memory title index for a dictionary
// body.
//
// The body file carries no on-disk index, so titles are discovered by one
// full scan of all blocks and entries. Each entry's title is the value of
// a title attribute (d:title by default) embedded in the entry text. A
// title may legitimately appear in multiple entries; locations are kept in
// scan order.
package index
