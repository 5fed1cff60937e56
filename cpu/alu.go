package cpu

// aluHandler routes an arithmetic instruction through the ALU.
func aluHandler(op Opcode) func(cpu *Cpu, args []uint8) error {
	return func(cpu *Cpu, args []uint8) error {
		return cpu.Alu(op, args[0], args[1])
	}
}

// Alu performs the arithmetic operation op on registers reg_a and reg_b,
// storing the result in reg_a. Results wrap at 8 bits.
//
// An op that is not an arithmetic opcode means the instruction set is
// wired incorrectly, and panics with ErrAluUnsupported.
func (cpu *Cpu) Alu(op Opcode, reg_a, reg_b uint8) (err error) {
	a, err := cpu.GetRegister(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.GetRegister(reg_b)
	if err != nil {
		return
	}

	var output uint8
	switch op {
	case OP_ADD:
		output = a + b
	case OP_MUL:
		output = a * b
	default:
		panic(ErrAluUnsupported(op))
	}

	cpu.Register[reg_a] = output

	return
}
