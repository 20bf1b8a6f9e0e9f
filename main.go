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
	"log"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/closeq/cmd"
	"github.com/timtadh/closeq/config"
)

func init() {
	cmd.UsageMessage = "closeq --help"
	cmd.ExtendedMessage = `
closeq - closed sequential patterns

$ closeq -o <path> [Global Options] <input-path> [<reporter> [Reporter Options]]

closeq reads frequent sequential patterns, each with the ids of the sequences
it occurs in, arranges them in a prefix trie and reports the closed ones: the
patterns with no strict superpattern of the same support.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file or a directory of such files. If supplying a gzip file the file
      extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.
      See the the documentations for Reporters for details.

Input Format
    One pattern per line. Itemsets are space separated items terminated by
    -1. The #SID: column lists the sequences the pattern occurs in and is
    required. The #SUP: column is optional and must match the #SID: column.
    Lines starting with #, @ or % are ignored.

        1 -1 #SUP: 3 #SID: 0 1 2
        1 -1 2 3 -1 #SUP: 2 #SID: 0 2

    Every prefix of a pattern must also be in the input.

Global Options
    -h, --help                view this message
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional)
                              NB: will overwrite contents of dir
    --support=<int>           drop input patterns below this support
                              (default 0)
    --sids                    write the #SID: column in the output
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the closed patterns
    file                      write the closed patterns to a file in the
                              output dir
    count                     write the number of closed patterns to a file
                              in the output dir
    unique                    takes an "inner reporter" but only passes the
                              unique patterns to the inner reporter.
    skip                      takes an "inner reporter" and passes it every
                              nth pattern
    heap-profile              write a heap profile while reporting

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -p, patterns=<name>   the name of the file in the output directory
                              (default closed.txt)

    count Options
        -f, filename=<name>   the name of the file in the output directory
                              (default count)

    skip Options
        -n, every=<int>       pass on every nth pattern (default 1)

    heap-profile Options
        -p, profile=<path>    where you want the heap-profile written
        -e, every=<int>       profile every n patterns reported (default 1)
        -a, after=<int>       profile after n patterns reported (default 0)

    Examples

        $ closeq -o /tmp/closeq ./patterns.txt.gz

        $ closeq -o /tmp/closeq --sids --support=5 ./patterns \
            chain log -l DEBUG file -p closed.spmf count endchain

        $ closeq --skip-log=DEBUG -o /tmp/closeq ./patterns.txt \
            chain \
                log -p closed \
                skip -n 100 heap-profile -p /tmp/closeq.heap \
                file
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:",
		[]string{
			"help",
			"output=", "cache=",
			"reporters",
			"support=",
			"sids",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	output := ""
	cache := ""
	support := 0
	sids := false
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = cmd.EmptyDir(oa.Arg())
		case "-c", "--cache":
			cache = cmd.EmptyDir(oa.Arg())
		case "--support":
			support = cmd.ParseInt(oa.Arg())
		case "--sids":
			sids = true
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if support < 0 {
		fmt.Fprintf(os.Stderr, "Support < 0, must be >= 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	conf := &config.Config{
		Cache:   cache,
		Output:  output,
		Support: support,
		Sids:    sids,
	}
	return cmd.Main(args, conf)
}
