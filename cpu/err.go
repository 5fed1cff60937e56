package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted             = errors.New(f("halted"))
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrOperandCount       = errors.New(f("operand count"))
	ErrImageTooLarge      = errors.New(f("image too large"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrOpcode is an opcode that has no entry in the instruction set.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("illegal instruction 0b%08b", uint8(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrIllegalInstruction
}

// ErrAluUnsupported is raised, as a panic, when an opcode other than an
// arithmetic one reaches the ALU.
type ErrAluUnsupported Opcode

func (ea ErrAluUnsupported) Error() string {
	return f("unsupported ALU operation %v", Opcode(ea))
}

// ErrAddress is a memory address outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%x outside memory", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrAddressInvalid
}

// ErrRegister is a register index outside of the register file.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %d invalid", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}

// ErrFault reports the instruction that halted the machine.
type ErrFault struct {
	Pc   int
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("fault at pc 0x%02x (%v): %v", err.Pc, err.Code, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
