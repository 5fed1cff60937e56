package cpu

import (
	"fmt"
	"io"
	"iter"
)

// Link is an operand byte to be patched with the address of a label.
type Link struct {
	Index int
	Label string
}

// Line is a line of assembled code with its source location and the
// bytes generated for it.
type Line struct {
	LineNo int
	Pc     int
	Text   string
	Words  []string
	Codes  []uint8
	Links  []Link
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the listing line that generated the byte at pc.
func (prog *Program) Debug(pc int) (dbg Debug) {
	for n, line := range prog.Lines {
		if pc >= line.Pc && pc < line.Pc+len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: pc - line.Pc,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the program.
func (prog *Program) Size() int {
	if len(prog.Lines) == 0 {
		return 0
	}

	last := prog.Lines[len(prog.Lines)-1]

	return last.Pc + len(last.Codes)
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Size())
	for pc, code := range prog.Codes() {
		bins[pc] = code
	}

	return
}

// Codes iterates over the program bytes by address.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(pc int, code uint8) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(line.Pc+n, code) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program in the binary image format, one byte per
// line, annotating the first byte of each line with its source text.
func (prog *Program) WriteImage(out io.Writer) (err error) {
	for _, line := range prog.Lines {
		for n, code := range line.Codes {
			if n == 0 {
				_, err = fmt.Fprintf(out, "%08b # %v\n", code, line.Text)
			} else {
				_, err = fmt.Fprintf(out, "%08b\n", code)
			}
			if err != nil {
				return
			}
		}
	}

	return
}
