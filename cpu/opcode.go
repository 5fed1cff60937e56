package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the first byte of an instruction.
//
// The LS-8 encodes the operand count in bits 7-6, marks ALU operations in
// bit 5 and instructions that set the PC in bit 4, but the machine does
// not decode those fields: every opcode is described by its entry in the
// instruction set.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b00000001) // HLT
	OP_LDI  = Opcode(0b10000010) // LDI
	OP_PRN  = Opcode(0b01000111) // PRN
	OP_ADD  = Opcode(0b10100000) // ADD
	OP_MUL  = Opcode(0b10100010) // MUL
	OP_PUSH = Opcode(0b01000101) // PUSH
	OP_POP  = Opcode(0b01000110) // POP
	OP_CALL = Opcode(0b01010000) // CALL
	OP_RET  = Opcode(0b00010001) // RET
)

// CodeArg is the kind of an operand byte.
type CodeArg int

const (
	ARG_REG = CodeArg(0) // Register index.
	ARG_IMM = CodeArg(1) // Immediate value.
)

// Instruction describes one entry of the instruction set.
type Instruction struct {
	Name    string    // Assembler mnemonic.
	Args    []CodeArg // Operand bytes following the opcode.
	Jump    bool      // Execute sets the PC itself.
	Execute func(cpu *Cpu, args []uint8) error
}

// Size returns the number of bytes the instruction occupies.
func (inst *Instruction) Size() int {
	return 1 + len(inst.Args)
}

var instructionSet = map[Opcode]*Instruction{
	OP_HLT:  {Name: "HLT", Execute: (*Cpu).opHlt},
	OP_LDI:  {Name: "LDI", Args: []CodeArg{ARG_REG, ARG_IMM}, Execute: (*Cpu).opLdi},
	OP_PRN:  {Name: "PRN", Args: []CodeArg{ARG_REG}, Execute: (*Cpu).opPrn},
	OP_ADD:  {Name: "ADD", Args: []CodeArg{ARG_REG, ARG_REG}, Execute: aluHandler(OP_ADD)},
	OP_MUL:  {Name: "MUL", Args: []CodeArg{ARG_REG, ARG_REG}, Execute: aluHandler(OP_MUL)},
	OP_PUSH: {Name: "PUSH", Args: []CodeArg{ARG_REG}, Execute: (*Cpu).opPush},
	OP_POP:  {Name: "POP", Args: []CodeArg{ARG_REG}, Execute: (*Cpu).opPop},
	OP_CALL: {Name: "CALL", Args: []CodeArg{ARG_REG}, Jump: true, Execute: (*Cpu).opCall},
	OP_RET:  {Name: "RET", Jump: true, Execute: (*Cpu).opRet},
}

// Lookup returns the instruction set entry for an opcode.
func Lookup(op Opcode) (inst *Instruction, ok bool) {
	inst, ok = instructionSet[op]
	return
}

// LookupName returns the opcode for an assembler mnemonic, ignoring case.
func LookupName(name string) (op Opcode, inst *Instruction, ok bool) {
	name = strings.ToUpper(name)
	for op, inst = range instructionSet {
		if inst.Name == name {
			ok = true
			return
		}
	}

	return 0, nil, false
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	inst, ok := instructionSet[op]
	if !ok {
		return fmt.Sprintf("0x%02X", uint8(op))
	}

	return inst.Name
}

// Code is a decoded instruction: its opcode and operand bytes.
type Code struct {
	Opcode   Opcode
	Operands []uint8
}

// Bytes returns the encoded instruction.
func (code Code) Bytes() (bytes []uint8) {
	bytes = append(bytes, uint8(code.Opcode))
	bytes = append(bytes, code.Operands...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst, ok := instructionSet[code.Opcode]
	if !ok || len(inst.Args) != len(code.Operands) {
		words := []string{code.Opcode.String()}
		for _, operand := range code.Operands {
			words = append(words, fmt.Sprintf("0x%02X", operand))
		}
		return strings.Join(words, " ")
	}

	var args []string
	for n, arg := range inst.Args {
		switch arg {
		case ARG_REG:
			args = append(args, fmt.Sprintf("R%d", code.Operands[n]))
		case ARG_IMM:
			args = append(args, fmt.Sprintf("%d", code.Operands[n]))
		}
	}

	if len(args) == 0 {
		return inst.Name
	}

	return inst.Name + " " + strings.Join(args, ",")
}
