// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/ls8/emulator"
	ls8io "github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

const (
	EXIT_OK       = 0 // Program halted.
	EXIT_USAGE    = 1 // Bad command line.
	EXIT_FILE     = 2 // Program file unreadable.
	EXIT_PARSE    = 3 // Image or assembly rejected.
	EXIT_RUNTIME  = 4 // Machine faulted.
	ASM_EXTENSION = ".asm"
)

// options are the command line settings.
type options struct {
	verbose bool
	save    bool
	output  string
	watch   bool
	debug   bool
	program string
}

// parseArgs parses the command line.
func parseArgs(args []string, stderr io.Writer) (opts options, err error) {
	flags := flag.NewFlagSet("ls8", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		translate.Fprintln(stderr, "usage: ls8 [-v] [-s] [-o out.ls8] [-watch] [-debug] program")
		flags.PrintDefaults()
	}

	flags.BoolVar(&opts.verbose, "v", false, "Trace each instruction to stdout")
	flags.BoolVar(&opts.save, "s", false, "Save the program image, do not execute")
	flags.StringVar(&opts.output, "o", "-", "Image output for -s")
	flags.BoolVar(&opts.watch, "watch", false, "Re-run the program when it changes")
	flags.BoolVar(&opts.debug, "debug", false, "Start the interactive monitor")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		err = flag.ErrHelp
		return
	}

	opts.program = flags.Arg(0)

	return
}

// load reads the program file into a new emulator, assembling it if it
// is source.
func load(path string) (emu *emulator.Emulator, code int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code = EXIT_FILE
		return
	}

	emu = emulator.NewEmulator()

	if strings.EqualFold(filepath.Ext(path), ASM_EXTENSION) {
		err = emu.Assemble(string(data))
	} else {
		var rom *ls8io.Rom
		rom, err = ls8io.ReadRom(bytes.NewReader(data))
		if err == nil {
			emu.Rom = *rom
		}
	}

	if err != nil {
		code = EXIT_PARSE
		emu = nil
	}

	return
}

// writeImage writes the loaded program as an image file.
func writeImage(emu *emulator.Emulator, out io.Writer) (err error) {
	if emu.Program != nil {
		return emu.Program.WriteImage(out)
	}

	for _, value := range emu.Rom.Bytes() {
		_, err = fmt.Fprintf(out, "%08b\n", value)
		if err != nil {
			return
		}
	}

	return
}

// save writes the program image to the -o destination.
func save(emu *emulator.Emulator, output string, stdout io.Writer) (err error) {
	if output == "-" {
		return writeImage(emu, stdout)
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	err = writeImage(emu, ouf)
	err = errors.Join(err, ouf.Close())

	return
}

// execute runs a loaded program to completion.
func execute(emu *emulator.Emulator, opts options, stdout io.Writer) (code int, err error) {
	emu.Verbose = opts.verbose
	emu.Tape.Output = stdout
	if opts.verbose {
		emu.Trace = log.New(stdout, "", 0)
	}

	err = emu.Reset()
	if err == nil {
		err = emu.Run()
	}

	if err != nil {
		code = EXIT_RUNTIME
	}

	return
}

// run is the whole command, returning the process exit status.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return EXIT_USAGE
	}

	if opts.watch {
		err = watch(opts, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "ls8: %v\n", err)
			return EXIT_FILE
		}
		return EXIT_OK
	}

	emu, code, err := load(opts.program)
	if err != nil {
		fmt.Fprintf(stderr, "ls8: %v: %v\n", opts.program, err)
		return code
	}

	switch {
	case opts.save:
		err = save(emu, opts.output, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "ls8: %v: %v\n", opts.output, err)
			return EXIT_FILE
		}
	case opts.debug:
		err = debug(emu, opts)
		if err != nil {
			fmt.Fprintf(stderr, "ls8: %v\n", err)
			return EXIT_RUNTIME
		}
	default:
		code, err = execute(emu, opts, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "ls8: %v: %v\n", opts.program, err)
			return code
		}
	}

	return EXIT_OK
}

func main() {
	log.SetPrefix("ls8: ")
	log.SetFlags(0)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
