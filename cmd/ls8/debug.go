package main

import (
	"errors"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

const DEBUG_PROMPT = "ls8> "

var ErrNotTerminal = errors.New(translate.From("stdin is not a terminal"))

// debug runs the monitor on the controlling terminal.
func debug(emu *emulator.Emulator, opts options) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = ErrNotTerminal
		return
	}

	old_state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, old_state)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	terminal := term.NewTerminal(screen, DEBUG_PROMPT)

	emu.Verbose = opts.verbose
	emu.Tape.Output = terminal
	if opts.verbose {
		emu.Trace = log.New(terminal, "", 0)
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	mon := emulator.NewMonitor(emu, terminal)
	translate.Fprintln(terminal, "%s: type 'help' for commands", opts.program)

	return mon.Serve(terminal.ReadLine)
}
