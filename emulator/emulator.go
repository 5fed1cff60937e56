// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + program image + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing, if the image came from source.

	Rom  io.Rom  // Program image loaded on reset.
	Tape io.Tape // PRN output.

	Trace *log.Logger // If set, receives a trace line before each instruction.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
	)
}

// Assemble parses LS-8 assembly source into the emulator's Program.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the machine and load the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program != nil {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		emu.Cpu.Running = false
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// LineNo returns the source line number for the instruction at the PC,
// or 0 when there is no listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	if emu.Trace != nil {
		emu.Trace.Print(emu.Cpu.Trace())
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d instructions", emu.Ticks())
	}

	return
}
