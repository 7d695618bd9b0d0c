// Command demangle rewrites mangled Rust symbol names to their
// human-readable form, either one name per argument or as a stream
// filter over stdin when given none.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tetratelabs/demangle"
)

func main() {
	os.Exit(doMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdIn io.Reader, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("demangle", flag.ContinueOnError)
	flags.SetOutput(stdErr)

	var alternate bool
	flags.BoolVar(&alternate, "a", false, "Print the alternate (short) form: no crate disambiguators or compiler hashes.")

	var help bool
	flags.BoolVar(&help, "h", false, "Prints usage.")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if help {
		printUsage(stdErr, flags)
		return 0
	}

	cfg := demangle.NewConfig().WithAlternate(alternate)

	if flags.NArg() == 0 {
		if err := demangle.DemangleStream(stdIn, stdOut, cfg); err != nil {
			fmt.Fprintf(stdErr, "error demangling stream: %v\n", err)
			return 1
		}
		return 0
	}

	for _, arg := range flags.Args() {
		sym := demangle.Demangle([]byte(arg))
		if alternate {
			fmt.Fprintf(stdOut, "%#v\n", sym)
		} else {
			fmt.Fprintln(stdOut, sym)
		}
	}
	return 0
}

func printUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "demangle: print the demangled form of Rust symbol names")
	fmt.Fprintln(stdErr, "usage: demangle [-a] [name ...]")
	fmt.Fprintln(stdErr, "  with no names given, filters stdin to stdout")
	flags.PrintDefaults()
}
