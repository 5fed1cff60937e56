// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The LS-8 has 256 bytes of memory, eight 8-bit general purpose registers
// (r7 doubles as the stack pointer), a program counter and a flags
// register. Instructions are one opcode byte followed by zero, one or two
// operand bytes. The processor fetches, decodes and executes one
// instruction per Tick until it executes HLT or faults.
//
// Register arithmetic wraps at 8 bits, the width of a memory cell.
//
// The assembler translates LS-8 mnemonics (LDI R0,8) into a Program that
// can be written out in the one-byte-per-line binary image format.
package cpu
