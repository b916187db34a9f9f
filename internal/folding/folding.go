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

// Package folding implements text folding for dictionary title lookup.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// TitleFolder folds dictionary titles for indexing and lookup. It removes
// whitespace from the beginning and end of the input and replaces internal
// whitespace spans with a single ASCII space. When CaseFold is set, runes
// are additionally lowercased.
type TitleFolder struct {
	// CaseFold enables case folding.
	CaseFold bool

	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// wsSpan is true while handling a whitespace span.
	wsSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (f *TitleFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if !f.notStart {
				// Ignore leading whitespace.
				continue
			}
			f.wsSpan = true
			continue
		}

		if f.wsSpan {
			// Emit a single space when coming out of a whitespace span.
			// Trailing whitespace is never emitted.
			spc := ' '
			if nDst+utf8.RuneLen(spc) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], spc)
			f.wsSpan = false
		}
		f.notStart = true
		nSrc += size

		if f.CaseFold {
			c = unicode.ToLower(c)
		}

		// NOTE: size cannot be used here because c could be utf8.RuneError
		// whose length is 3 while size would be 1.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *TitleFolder) Reset() {
	*f = TitleFolder{CaseFold: f.CaseFold}
}
