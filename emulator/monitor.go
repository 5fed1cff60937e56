package emulator

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
)

const (
	MONITOR_DUMP_WIDTH = 8  // Bytes per 'mem' line.
	MONITOR_DIS_COUNT  = 8  // Instructions per 'dis'.
	MONITOR_MEM_COUNT  = 32 // Bytes per 'mem' without a count.
)

var monitorHelp = []string{
	"step [N]          execute N instructions (default 1)",
	"continue          run until halt or a breakpoint",
	"break [ADDR]      set a breakpoint, or list breakpoints",
	"delete ADDR       remove a breakpoint",
	"regs              show registers",
	"mem ADDR [COUNT]  dump memory",
	"dis [ADDR]        disassemble",
	"trace             show the trace line",
	"reset             reload the program",
	"quit              leave the monitor",
}

// Monitor is an interactive debugger for an Emulator.
type Monitor struct {
	Emulator *Emulator
	Output   io.Writer

	Breakpoints map[int]bool
}

// NewMonitor creates a monitor writing to output.
func NewMonitor(emu *Emulator, output io.Writer) *Monitor {
	return &Monitor{
		Emulator:    emu,
		Output:      output,
		Breakpoints: map[int]bool{},
	}
}

// address parses a memory address.
func address(word string) (addr int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 < 0 || v64 >= cpu.MEMORY_SIZE {
		err = errors.Join(ErrMonitorArgument, fmt.Errorf("%q", word))
		return
	}

	addr = int(v64)
	return
}

// count parses an optional positive count.
func count(words []string, def int) (n int, err error) {
	if len(words) == 0 {
		n = def
		return
	}

	n, err = strconv.Atoi(words[0])
	if err != nil || n <= 0 {
		err = errors.Join(ErrMonitorArgument, fmt.Errorf("%q", words[0]))
	}

	return
}

func (mon *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(mon.Output, format, args...)
}

// step executes one instruction, printing it first.
func (mon *Monitor) step() (done bool, err error) {
	emu := mon.Emulator

	text, _ := emu.Cpu.Disassemble(emu.Cpu.Pc)
	mon.printf("%02X: %v\n", emu.Cpu.Pc, text)

	return emu.Tick()
}

// Exec executes one monitor command line.
func (mon *Monitor) Exec(line string) (quit bool, err error) {
	emu := mon.Emulator

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	command := words[0]
	args := words[1:]

	switch command {
	case "help", "h", "?":
		for _, text := range monitorHelp {
			mon.printf("%v\n", text)
		}
	case "step", "s":
		var n int
		n, err = count(args, 1)
		if err != nil {
			return
		}
		for range n {
			var done bool
			done, err = mon.step()
			if err != nil || done {
				break
			}
		}
		if !emu.Cpu.Running && err == nil {
			mon.printf("%v\n", emu.Cpu.State())
		}
	case "continue", "c":
		var done bool
		first := true
		for !done {
			if !first && mon.Breakpoints[emu.Cpu.Pc] {
				mon.printf("break at %02X\n", emu.Cpu.Pc)
				break
			}
			first = false
			done, err = emu.Tick()
			if err != nil {
				return
			}
		}
		if done {
			mon.printf("%v after %d instructions\n", emu.Cpu.State(), emu.Ticks())
		}
	case "break", "b":
		if len(args) == 0 {
			for _, addr := range slices.Sorted(maps.Keys(mon.Breakpoints)) {
				mon.printf("%02X\n", addr)
			}
			return
		}
		var addr int
		addr, err = address(args[0])
		if err != nil {
			return
		}
		mon.Breakpoints[addr] = true
	case "delete", "d":
		if len(args) != 1 {
			err = ErrMonitorArgument
			return
		}
		var addr int
		addr, err = address(args[0])
		if err != nil {
			return
		}
		delete(mon.Breakpoints, addr)
	case "regs", "r":
		mon.printf("%v", emu.Cpu.String())
	case "mem", "m":
		if len(args) == 0 {
			err = ErrMonitorArgument
			return
		}
		var addr, n int
		addr, err = address(args[0])
		if err != nil {
			return
		}
		n, err = count(args[1:], MONITOR_MEM_COUNT)
		if err != nil {
			return
		}
		end := min(addr+n, cpu.MEMORY_SIZE)
		for base := addr; base < end; base += MONITOR_DUMP_WIDTH {
			mon.printf("%02X:", base)
			for pc := base; pc < min(base+MONITOR_DUMP_WIDTH, end); pc++ {
				mon.printf(" %02X", emu.Cpu.Memory[pc])
			}
			mon.printf("\n")
		}
	case "dis":
		pc := emu.Cpu.Pc
		if len(args) > 0 {
			pc, err = address(args[0])
			if err != nil {
				return
			}
		}
		for range MONITOR_DIS_COUNT {
			if pc >= cpu.MEMORY_SIZE {
				break
			}
			text, size := emu.Cpu.Disassemble(pc)
			mon.printf("%02X: %v\n", pc, text)
			pc += size
		}
	case "trace", "t":
		mon.printf("%v\n", emu.Cpu.Trace())
	case "reset":
		err = emu.Reset()
	case "quit", "q":
		quit = true
	default:
		err = errors.Join(ErrMonitorCommand, fmt.Errorf("%q", command))
	}

	return
}

// Serve reads command lines until quit or the end of input, reporting
// command errors to the monitor output.
func (mon *Monitor) Serve(readLine func() (string, error)) (err error) {
	for {
		var line string
		line, err = readLine()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var quit bool
		quit, err = mon.Exec(line)
		if err != nil {
			mon.printf("%v\n", err)
		}
		if quit {
			err = nil
			return
		}
	}
}
