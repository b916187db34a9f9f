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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-appledict"
)

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "Dump all entries of a dictionary",
	ArgsUsage: "[DIR]",
	Description: `Stream every entry of the dictionary whose Contents directory
is DIR, in block order.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}

		d, err := appledict.Open(c.Args().Get(0), nil)
		if err != nil {
			//nolint:wrapcheck // library errors are user facing here.
			return err
		}
		defer d.Close()

		//nolint:wrapcheck // library errors are user facing here.
		return d.Walk(func(e *appledict.Entry) error {
			off := e.Offset()
			_, err := fmt.Fprintf(c.App.Writer, "%d\t%d\t%s\n", off.Block, off.Offset, e.Text())
			return err
		})
	},
}
