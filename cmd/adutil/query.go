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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-appledict"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Query dictionaries for a title",
	ArgsUsage: "[TITLE]",
	Description: `Query all dictionaries in the data directories and print the
entries whose title matches TITLE.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}
		title := c.Args().Get(0)

		dicts, errs := openDictionaries(c.StringSlice("data-dir"), nil)
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer func() {
			for _, d := range dicts {
				d.Close()
			}
		}()

		for _, d := range dicts {
			entries, err := d.Lookup(title)
			if err != nil {
				if errors.Is(err, appledict.ErrNotFound) {
					continue
				}
				fmt.Fprintln(os.Stderr, err)
				continue
			}

			fmt.Fprintln(c.App.Writer, d.Name())
			fmt.Fprintln(c.App.Writer)
			for _, e := range entries {
				fmt.Fprintln(c.App.Writer, e)
			}
		}

		if len(errs) > 0 {
			return fmt.Errorf("%w: some dictionaries could not be opened", ErrAdutil)
		}
		return nil
	},
}
