package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/closeq/cmd"
	"github.com/timtadh/closeq/loader"
	"github.com/timtadh/closeq/pattern"
)

func init() {
	cmd.UsageMessage = "find-occurrences --help"
	cmd.ExtendedMessage = `
find-occurrences -p <pattern> <sequence-database>

Prints the pattern with the ids of the sequences it occurs in, in the same
format closeq reads:

    $ find-occurrences -p "1 -1 3 -1" ./data/sequences.txt
    1 -1 3 -1 #SUP: 2 #SID: 0 2
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hp:",
		[]string{
			"help",
			"pattern=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	text := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-p", "--pattern":
			text = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if text == "" {
		fmt.Fprintf(os.Stderr, "You must supply a pattern (-p)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	p, err := pattern.Parse(text)
	if err != nil || p.Len() == 0 {
		fmt.Fprintf(os.Stderr, "There was error parsing the pattern '%v'\n", text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return 1
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])
	reader, closer, err := cmd.Input(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	getInput := func() (io.Reader, func()) {
		return reader, closer
	}

	errors.Logf("INFO", "loaded pattern %v", p)
	ids, err := loader.Occurrences(getInput, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error reading the sequences\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Printf("%v #SUP: %d #SID:", p, ids.Cardinality())
	ids.Do(func(id int) bool {
		fmt.Printf(" %d", id)
		return true
	})
	fmt.Println()
	errors.Logf("INFO", "done")
	return 0
}
