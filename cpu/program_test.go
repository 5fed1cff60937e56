package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Pc: 0, Words: []string{"LDI", "R0", "8"}, Codes: image(ldi(0, 8))},
			{LineNo: 2, Pc: 3, Words: []string{"PRN", "R0"}, Codes: image(prn(0))},
			{LineNo: 4, Pc: 5, Words: []string{"HLT"}, Codes: image(hlt())},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(2, dbg.Line.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.Equal(4, dbg.Line.LineNo)

	dbg = prog.Debug(6)
	assert.Nil(dbg.Line)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Pc: 0, Codes: image(ldi(0, 8))},
			{LineNo: 2, Pc: 3, Codes: image(hlt())},
		},
	}

	var pcs []int
	var codes []uint8
	for pc, code := range prog.Codes() {
		pcs = append(pcs, pc)
		codes = append(codes, code)
		if pc == 2 {
			break
		}
	}

	assert.Equal([]int{0, 1, 2}, pcs)
	assert.Equal([]uint8{0x82, 0x00, 0x08}, codes)
	assert.Equal(4, prog.Size())
	assert.Equal([]uint8{0x82, 0x00, 0x08, 0x01}, prog.Binary())
}

func TestProgram_WriteImage(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{
		"LDI R0,5",
		"LDI R1,10",
		"PUSH R0",
		"PUSH R1",
		"POP R0",
		"POP R1",
		"PRN R0",
		"PRN R1",
		"HLT",
	})

	buffer := &bytes.Buffer{}
	assert.NoError(prog.WriteImage(buffer))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	assert.Equal(prog.Size(), len(lines))
	assert.Equal("10000010 # LDI R0,5", lines[0])
	assert.Equal("00000000", lines[1])
	assert.Equal("00000101", lines[2])
	assert.Equal("00000001 # HLT", lines[len(lines)-1])

	rom, err := io.ReadRom(bytes.NewReader(buffer.Bytes()))
	assert.NoError(err)
	assert.Equal(prog.Binary(), rom.Data)

	output := &bytes.Buffer{}
	cpu := NewCpu()
	cpu.Output = &io.Tape{Output: output}
	assert.NoError(cpu.Load(rom.Data))
	assert.NoError(cpu.Run())
	assert.Equal("10\n5\n", output.String())
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) { return 0, errWrite }

func TestProgram_WriteImage_Error(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"HLT"})
	assert.ErrorIs(prog.WriteImage(failWriter{}), errWrite)
}
