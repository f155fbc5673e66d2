// sfvfmt - structured field value formatter CLI
//
// Usage:
//
//	sfvfmt list [file]       Parse a List field value and re-emit its canonical form
//	sfvfmt dict [file]       Parse a Dictionary field value and re-emit its canonical form
//	sfvfmt item [file]       Parse an Item field value and re-emit its canonical form
//	sfvfmt version           Print version info
//
// If no file is given, reads from stdin. On a parse error, prints the
// error kind and byte offset to stderr and exits nonzero.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sfvgo/sfv/sfv"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var input io.Reader = os.Stdin

	if len(os.Args) > 2 && os.Args[2] != "-" {
		f, err := os.Open(os.Args[2])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "list":
		cmdFormat(input, sfv.ParseList, func(l sfv.List) ([]byte, error) { return l.Marshal() })
	case "dict":
		cmdFormat(input, sfv.ParseDictionary, func(d sfv.Dictionary) ([]byte, error) { return d.Marshal() })
	case "item":
		cmdFormat(input, sfv.ParseItem, func(it sfv.Item) ([]byte, error) { return it.Marshal() })
	case "version", "-v", "--version":
		fmt.Printf("sfvfmt %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `sfvfmt - structured field value formatter

Usage:
  sfvfmt list [file]     Parse a List and re-emit its canonical form
  sfvfmt dict [file]     Parse a Dictionary and re-emit its canonical form
  sfvfmt item [file]     Parse an Item and re-emit its canonical form
  sfvfmt version         Print version info

If no file is given, reads from stdin.

Examples:
  echo 'a, b, c' | sfvfmt list
  echo 'a=1, b;foo=bar' | sfvfmt dict
  echo '"hello world";q=0.5' | sfvfmt item
`)
}

func cmdFormat[T any](r io.Reader, parse func([]byte) (T, error), marshal func(T) ([]byte, error)) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	trimmed := strings.TrimRight(string(data), "\n")

	v, err := parse([]byte(trimmed))
	if err != nil {
		reportParseError(err)
		os.Exit(1)
	}

	out, err := marshal(v)
	if err != nil {
		fatal("serialize: %v", err)
	}
	fmt.Println(string(out))
}

func reportParseError(err error) {
	var pe *sfv.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintf(os.Stderr, "sfvfmt: parse error: %s at offset %d\n", pe.Kind, pe.Offset)
		return
	}
	fmt.Fprintf(os.Stderr, "sfvfmt: parse error: %v\n", err)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "sfvfmt: "+format+"\n", args...)
	os.Exit(1)
}
