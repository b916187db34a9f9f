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

package folding_test

import (
	"testing"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-appledict/internal/folding"
)

// TestTitleFolder tests title folding.
func TestTitleFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		caseFold bool
		expected string
	}{
		{
			name:     "unchanged",
			input:    "hoge",
			expected: "hoge",
		},
		{
			name:     "leading whitespace",
			input:    "  hoge",
			expected: "hoge",
		},
		{
			name:     "trailing whitespace",
			input:    "hoge \t ",
			expected: "hoge",
		},
		{
			name:     "internal whitespace span",
			input:    "hoge \t fuga",
			expected: "hoge fuga",
		},
		{
			name:     "case fold",
			input:    "  Hoge\tFUGA ",
			caseFold: true,
			expected: "hoge fuga",
		},
		{
			name:     "case preserved by default",
			input:    "Hoge",
			expected: "Hoge",
		},
		{
			name:     "unicode",
			input:    "り んご",
			expected: "り んご",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test := test
			t.Parallel()

			folded, _, err := transform.String(&folding.TitleFolder{
				CaseFold: test.caseFold,
			}, test.input)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := folded, test.expected; got != want {
				t.Fatalf("TitleFolder: got %q, want %q", got, want)
			}
		})
	}
}
