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

package appledict

import (
	"github.com/k3a/html2text"

	"github.com/ianlewis/go-appledict/body"
)

// Entry is a dictionary entry.
type Entry struct {
	title string
	text  string
	off   body.BlockOffset
	data  any
}

// Title returns the entry's title. It is empty when the entry carries no
// title attribute.
func (e *Entry) Title() string {
	return e.title
}

// Text returns the entry's raw decoded text.
func (e *Entry) Text() string {
	return e.text
}

// Offset returns the entry's location in the body.
func (e *Entry) Offset() body.BlockOffset {
	return e.off
}

// Data returns the interpreted value produced by the Interpret option.
// The library does not inspect this value.
func (e *Entry) Data() any {
	return e.data
}

// String returns a plain-text rendering of the entry. Entry text is XML
// markup; it is rendered the way an HTML fragment would be.
func (e *Entry) String() string {
	return e.title + "\n" + html2text.HTML2Text(e.text) + "\n"
}
