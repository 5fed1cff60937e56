package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The opcode bit fields are not decoded, but the table must agree with them.
func TestInstructionSet_Encoding(t *testing.T) {
	for op, inst := range instructionSet {
		assert.Equal(t, int(op>>6), len(inst.Args), inst.Name)
		assert.Equal(t, (op>>4)&1 == 1, inst.Jump, inst.Name)

		is_alu := (op>>5)&1 == 1
		assert.Equal(t, is_alu, op == OP_ADD || op == OP_MUL, inst.Name)

		assert.Equal(t, 1+len(inst.Args), inst.Size(), inst.Name)
		assert.NotNil(t, inst.Execute, inst.Name)
	}
}

func TestLookupName(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"HLT", "ldi", "Prn", "ADD", "mul", "PUSH", "pop", "CALL", "ret"} {
		op, inst, ok := LookupName(name)
		assert.True(ok, name)
		assert.Equal(op.String(), inst.Name, name)
	}

	_, _, ok := LookupName("JMP")
	assert.False(ok)
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("LDI", OP_LDI.String())
	assert.Equal("RET", OP_RET.String())
	assert.Equal("0xFF", Opcode(0xff).String())
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{ldi(0, 8), "LDI R0,8"},
		{prn(7), "PRN R7"},
		{mul(0, 1), "MUL R0,R1"},
		{call(2), "CALL R2"},
		{hlt(), "HLT"},
		{Code{Opcode: 0xff}, "0xFF"},
		{Code{Opcode: OP_LDI, Operands: []uint8{1}}, "LDI 0x01"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}

func TestCode_Bytes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]uint8{0x82, 0x00, 0x08}, ldi(0, 8).Bytes())
	assert.Equal([]uint8{0x01}, hlt().Bytes())
}
