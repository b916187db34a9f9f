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

package index

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-appledict/body"
)

// DefaultTitleAttr is the default title attribute name.
const DefaultTitleAttr = "d:title"

// Options are options for building a title index.
type Options struct {
	// TitleAttr is the attribute name whose value titles each entry.
	// Defaults to d:title.
	TitleAttr string

	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on titles for indexing and
	// lookup.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	TitleAttr: DefaultTitleAttr,
	Folder: func() transform.Transformer {
		return transform.Nop
	},
}

// Index maps entry titles to the locations of the entries carrying them.
// An Index is immutable once built and may be read concurrently.
type Index struct {
	titles map[string][]body.BlockOffset

	// order holds distinct folded titles in first-seen scan order.
	order []string

	folder func() transform.Transformer
}

// New builds an index with one full scan over every block and entry of b.
// This is the dominant cost of first use; it is O(total decompressed
// bytes) and is performed at most once per opened body by callers that
// retain the Index.
//
// Entries whose text has no title attribute, and entries with an empty
// title value, are skipped. Repeated titles append locations in scan
// order.
func New(b *body.Body, options *Options) (*Index, error) {
	if options == nil {
		options = DefaultOptions
	}
	titleAttr := options.TitleAttr
	if titleAttr == "" {
		titleAttr = DefaultTitleAttr
	}
	folder := options.Folder
	if folder == nil {
		folder = DefaultOptions.Folder
	}

	idx := &Index{
		titles: map[string][]body.BlockOffset{},
		folder: folder,
	}

	err := b.Walk(func(off body.BlockOffset, text string) error {
		title, ok := Title(text, titleAttr)
		if !ok {
			// Untitled entries are not indexed.
			return nil
		}
		folded, err := idx.fold(title)
		if err != nil {
			return fmt.Errorf("folding title %q: %w", title, err)
		}
		if _, ok := idx.titles[folded]; !ok {
			idx.order = append(idx.order, folded)
		}
		idx.titles[folded] = append(idx.titles[folded], off)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Debugf("indexed %d titles", len(idx.titles))
	return idx, nil
}

// Title extracts the value of the titleAttr attribute from an entry's
// text. It reports false when the attribute is absent or its value is
// empty. Searching for the attribute marker directly is much faster than
// parsing the entry markup just to read one attribute.
func Title(text, titleAttr string) (string, bool) {
	marker := titleAttr + `="`
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	v := text[i+len(marker):]
	j := strings.IndexByte(v, '"')
	if j <= 0 {
		return "", false
	}
	return v[:j], true
}

// Lookup returns the locations of entries titled title in scan order, or
// nil when the title is not indexed.
func (idx *Index) Lookup(title string) []body.BlockOffset {
	folded, err := idx.fold(title)
	if err != nil {
		return nil
	}
	return idx.titles[folded]
}

// Len returns the number of distinct titles in the index.
func (idx *Index) Len() int {
	return len(idx.titles)
}

// Titles returns all indexed titles in first-seen scan order.
func (idx *Index) Titles() []string {
	return slices.Clone(idx.order)
}

// fold normalizes a title with the configured folder.
func (idx *Index) fold(title string) (string, error) {
	folded, _, err := transform.String(idx.folder(), title)
	if err != nil {
		//nolint:wrapcheck // folding errors are reported by callers.
		return "", err
	}
	return folded, nil
}
