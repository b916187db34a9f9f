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
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List dictionaries",
	Description: `List all dictionaries in the data directories.

Dictionary bundles are directories with a .dictionary extension containing
a Contents/Body.data file.`,
	Action: func(c *cli.Context) error {
		dicts, errs := openDictionaries(c.StringSlice("data-dir"), nil)
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		defer func() {
			for _, d := range dicts {
				d.Close()
			}
		}()

		tbl := table.New("Name", "Identifier", "Version", "Blocks").WithWriter(c.App.Writer)
		for _, d := range dicts {
			var identifier, version string
			if info := d.Info(); info != nil {
				identifier = info.Identifier
				version = info.Version
			}
			tbl.AddRow(d.Name(), identifier, version, d.Body().BlockCount())
		}
		tbl.Print()

		if len(errs) > 0 {
			return fmt.Errorf("%w: some dictionaries could not be opened", ErrAdutil)
		}
		return nil
	},
}
