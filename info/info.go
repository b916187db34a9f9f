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

// Package info implements reading dictionary bundle Info.plist metadata.
package info

import (
	"fmt"
	"os"

	"howett.net/plist"
)

// DefaultName is the metadata file name within a bundle's Contents
// directory.
const DefaultName = "Info.plist"

// Info is a dictionary bundle's Info.plist metadata.
type Info struct {
	// Name is the bundle's display name.
	Name string

	// Identifier is the bundle identifier.
	Identifier string

	// Version is the bundle's short version string.
	Version string

	values map[string]any
}

// Open reads the Info.plist file at path.
func Open(path string) (*Info, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return New(b)
}

// New decodes Info.plist data.
func New(b []byte) (*Info, error) {
	var values map[string]any
	if _, err := plist.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decoding plist: %w", err)
	}

	i := &Info{
		values: values,
	}
	i.Name, _ = values["CFBundleDisplayName"].(string)
	if i.Name == "" {
		i.Name, _ = values["CFBundleName"].(string)
	}
	i.Identifier, _ = values["CFBundleIdentifier"].(string)
	i.Version, _ = values["CFBundleShortVersionString"].(string)
	return i, nil
}

// Value returns the raw metadata value for key.
func (i *Info) Value(key string) any {
	return i.values[key]
}
