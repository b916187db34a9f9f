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

// Package testutil provides test fixtures for dictionary bundles.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-appledict/body"
)

// CountingReadSeeker wraps an io.ReadSeeker and counts Read and Seek
// calls. It is used to verify idempotence and caching properties.
type CountingReadSeeker struct {
	R io.ReadSeeker

	// Reads is the number of Read calls made.
	Reads int

	// Seeks is the number of Seek calls made.
	Seeks int
}

// Read implements io.Reader.
func (c *CountingReadSeeker) Read(p []byte) (int, error) {
	c.Reads++
	//nolint:wrapcheck // transparent wrapper.
	return c.R.Read(p)
}

// Seek implements io.Seeker.
func (c *CountingReadSeeker) Seek(offset int64, whence int) (int64, error) {
	c.Seeks++
	//nolint:wrapcheck // transparent wrapper.
	return c.R.Seek(offset, whence)
}

// InfoPlist returns a minimal XML Info.plist with the given bundle name.
func InfoPlist(name string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>` + name + `</string>
	<key>CFBundleIdentifier</key>
	<string>com.example.` + name + `</string>
	<key>CFBundleShortVersionString</key>
	<string>1.0</string>
</dict>
</plist>
`)
}

// MakeTempDictionary writes a dictionary bundle's Contents directory
// containing a body built from blocks and a minimal Info.plist. It
// returns the Contents directory path.
func MakeTempDictionary(t *testing.T, name string, blocks []body.TestBlock) string {
	t.Helper()

	contents := filepath.Join(t.TempDir(), name+".dictionary", "Contents")
	if err := os.MkdirAll(contents, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(contents, "Body.data"), body.MakeBody(blocks), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(contents, "Info.plist"), InfoPlist(name), 0o600); err != nil {
		t.Fatal(err)
	}

	return contents
}
