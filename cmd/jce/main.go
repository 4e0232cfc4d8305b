// jce inspects, converts and generates code for JCE (TARS) encoded data.
//
//	jce decode   [flags] [file]   decode to JSON, YAML or CBOR
//	jce diag     [flags] [file]   print the wire layout as a tree
//	jce validate [flags] [file]   check that input is well formed
//	jce encode   [flags] [file]   encode a JSON value tree to JCE
//	jce gen      --schema f       generate Go types from a schema
//
// Input is read from file, or stdin when file is omitted or "-".
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

type command struct {
	name    string
	args    string
	summary string
	run     func(env *env, args []string) error
}

var commands = []*command{
	decodeCommand,
	diagCommand,
	validateCommand,
	encodeCommand,
	genCommand,
}

// errUsage is returned for command lines that cannot be run; the usage text
// has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			newLogger(os.Stderr, false).Error("jce failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}
	name := args[0]
	switch name {
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	for _, c := range commands {
		if c.name == name {
			return c.run(&env{stdout: stdout, stderr: stderr, cmd: c}, args[1:])
		}
	}
	fmt.Fprintf(stderr, "jce: unknown command %q\n\n", name)
	printUsage(stderr)
	return errUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: jce <command> [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "jce <command> --help" for the flags of a command.`)
}

// parseFlags parses args with fs. It returns done=true when --help was
// requested and handled.
func parseFlags(e *env, fs *pflag.FlagSet, args []string) (done bool, err error) {
	c := e.cmd
	fs.SetOutput(e.stderr)
	fs.BoolVarP(&e.verbose, "verbose", "v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: jce %s %s\n\n%s.\n\nFlags:\n", c.name, c.args, strings.ToUpper(c.summary[:1])+c.summary[1:])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, errUsage
	}
	e.logger = newLogger(e.stderr, e.verbose).With("command", c.name)
	return false, nil
}

// fileArg returns the single optional positional argument.
func fileArg(fs *pflag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "-", nil
	case 1:
		return fs.Arg(0), nil
	}
	return "", fmt.Errorf("expected at most one input file, got %d", fs.NArg())
}
