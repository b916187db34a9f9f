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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/encoding"

	"github.com/ianlewis/go-appledict/body"
	"github.com/ianlewis/go-appledict/index"
	"github.com/ianlewis/go-appledict/info"
	"github.com/ianlewis/go-appledict/internal/cache"
)

// ErrNotFound indicates that a title is not present in the index.
var ErrNotFound = errors.New("title not found")

// ErrNotIndexed indicates a lookup before BuildIndex on a dictionary
// opened with the ExplicitIndex option.
var ErrNotIndexed = errors.New("index not built")

// DefaultBodyName is the default body file name within a bundle's Contents
// directory.
const DefaultBodyName = "Body.data"

// InterpretFunc converts an entry's raw decoded text into a caller-defined
// representation. The library stores and returns the result without
// inspecting it.
type InterpretFunc func(text string) (any, error)

// Options are options for opening a Dictionary.
type Options struct {
	// BodyName is the file name of the dictionary body. Defaults to
	// Body.data.
	BodyName string

	// Encoding is the text encoding of the body. A nil Encoding means
	// UTF-8.
	Encoding encoding.Encoding

	// TitleAttr is the attribute name whose value titles each entry.
	// Defaults to d:title.
	TitleAttr string

	// Cache enables the entry cache.
	Cache bool

	// CacheSize is the entry cache capacity in titles. A value of zero or
	// less uses the default capacity.
	CacheSize int

	// ExplicitIndex makes Lookup fail with ErrNotIndexed until BuildIndex
	// is called, instead of building the index on demand.
	ExplicitIndex bool

	// Interpret converts raw entry text for Entry.Data. Defaults to the
	// identity conversion.
	Interpret InterpretFunc
}

// Dictionary is an Apple dictionary.
type Dictionary struct {
	path string

	body *body.Body
	info *info.Info

	titleAttr string
	explicit  bool
	interpret InterpretFunc
	cache     *cache.Cache[[]*Entry]

	// idx is built at most once. The atomic fast path avoids the mutex
	// once the index exists; buildMu serializes construction.
	idx     atomic.Pointer[index.Index]
	buildMu sync.Mutex
}

// Open opens the dictionary whose Contents directory is at path. The
// directory must contain a body file (Body.data by default). Info.plist
// metadata is read when present but its absence is not an error.
func Open(path string, options *Options) (*Dictionary, error) {
	if options == nil {
		options = &Options{}
	}
	bodyName := options.BodyName
	if bodyName == "" {
		bodyName = DefaultBodyName
	}

	b, err := body.Open(filepath.Join(path, bodyName), &body.Options{
		Encoding: options.Encoding,
	})
	if err != nil {
		return nil, err
	}

	d, err := New(b, options)
	if err != nil {
		b.Close()
		return nil, err
	}
	d.path = path

	if i, err := info.Open(filepath.Join(path, info.DefaultName)); err == nil {
		d.info = i
	}

	return d, nil
}

// New returns a new Dictionary reading entries from b. The Dictionary
// takes ownership of b.
func New(b *body.Body, options *Options) (*Dictionary, error) {
	if options == nil {
		options = &Options{}
	}

	d := &Dictionary{
		body:      b,
		titleAttr: options.TitleAttr,
		explicit:  options.ExplicitIndex,
		interpret: options.Interpret,
	}
	if d.titleAttr == "" {
		d.titleAttr = index.DefaultTitleAttr
	}
	if d.interpret == nil {
		d.interpret = func(text string) (any, error) {
			return text, nil
		}
	}

	if options.Cache {
		c, err := cache.New[[]*Entry](options.CacheSize)
		if err != nil {
			return nil, err
		}
		d.cache = c
	}

	return d, nil
}

// OpenAll opens all dictionary bundles under a directory. This function
// returns all successfully opened dictionaries along with any errors that
// occurred.
func OpenAll(path string, options *Options) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".dictionary") {
			return nil
		}
		contents := filepath.Join(path, "Contents")
		if _, err := os.Stat(contents); err != nil {
			return nil
		}
		d, err := Open(contents, options)
		if err != nil {
			errs = append(errs, err)
			return fs.SkipDir
		}
		dicts = append(dicts, d)
		return fs.SkipDir
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

// Name returns the dictionary's display name from its bundle metadata, or
// the bundle directory name when no metadata is present.
func (d *Dictionary) Name() string {
	if d.info != nil && d.info.Name != "" {
		return d.info.Name
	}
	bundle := filepath.Dir(d.path)
	return strings.TrimSuffix(filepath.Base(bundle), filepath.Ext(bundle))
}

// Info returns the dictionary's bundle metadata. It may be nil.
func (d *Dictionary) Info() *info.Info {
	return d.info
}

// Body returns the dictionary's body reader.
func (d *Dictionary) Body() *body.Body {
	return d.body
}

// BuildIndex builds the title index with one full scan of the body. It is
// idempotent: once the index is built later calls return it without
// re-scanning, and concurrent first use performs the scan exactly once.
func (d *Dictionary) BuildIndex() (*index.Index, error) {
	if idx := d.idx.Load(); idx != nil {
		return idx, nil
	}

	d.buildMu.Lock()
	defer d.buildMu.Unlock()
	if idx := d.idx.Load(); idx != nil {
		return idx, nil
	}

	idx, err := index.New(d.body, &index.Options{
		TitleAttr: d.titleAttr,
	})
	if err != nil {
		return nil, err
	}
	d.idx.Store(idx)
	return idx, nil
}

// Index returns the title index, building it if needed.
func (d *Dictionary) Index() (*index.Index, error) {
	return d.BuildIndex()
}

// Lookup returns the entries titled title in index scan order. Entries are
// read from disk by their indexed location, decompressing only the blocks
// they live in, and interpreted with the configured Interpret function.
//
// When the entry cache is enabled a cached result is returned verbatim
// without touching the file.
func (d *Dictionary) Lookup(title string) ([]*Entry, error) {
	if d.cache != nil {
		if entries, ok := d.cache.Get(title); ok {
			return entries, nil
		}
	}

	idx := d.idx.Load()
	if idx == nil {
		if d.explicit {
			return nil, fmt.Errorf("%w: %q", ErrNotIndexed, title)
		}
		var err error
		idx, err = d.BuildIndex()
		if err != nil {
			return nil, err
		}
	}

	offsets := idx.Lookup(title)
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	entries := make([]*Entry, 0, len(offsets))
	for _, off := range offsets {
		e, err := d.body.ReadEntryAt(off)
		if err != nil {
			return nil, err
		}
		data, err := d.interpret(e.Text)
		if err != nil {
			return nil, fmt.Errorf("interpreting entry %q: %w", title, err)
		}
		entries = append(entries, &Entry{
			title: title,
			text:  e.Text,
			off:   off,
			data:  data,
		})
	}

	if d.cache != nil {
		d.cache.Add(title, entries)
	}
	return entries, nil
}

// Walk calls fn for every entry in the dictionary in block order. The
// walk decompresses each block once and does not require the index.
func (d *Dictionary) Walk(fn func(e *Entry) error) error {
	return d.body.Walk(func(off body.BlockOffset, text string) error {
		title, _ := index.Title(text, d.titleAttr)
		data, err := d.interpret(text)
		if err != nil {
			return fmt.Errorf("interpreting entry at %+v: %w", off, err)
		}
		return fn(&Entry{
			title: title,
			text:  text,
			off:   off,
			data:  data,
		})
	})
}

// Close closes the dictionary's body file.
func (d *Dictionary) Close() error {
	return d.body.Close()
}
