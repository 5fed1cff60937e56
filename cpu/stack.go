package cpu

// The stack lives in memory below STACK_TOP and is addressed by r7.

// Peek returns the value on top of the stack.
func (cpu *Cpu) Peek() (value uint8, err error) {
	sp := cpu.Register[REG_SP]
	if sp >= STACK_TOP {
		err = ErrStackUnderflow
		return
	}

	return cpu.ReadMemory(int(sp))
}

// Push decrements the stack pointer and stores value at the new top.
func (cpu *Cpu) Push(value uint8) (err error) {
	sp := cpu.Register[REG_SP]
	if sp == 0 {
		err = ErrStackOverflow
		return
	}

	sp--
	err = cpu.WriteMemory(int(sp), value)
	if err != nil {
		return
	}
	cpu.Register[REG_SP] = sp

	return
}

// Pop loads the top of the stack and increments the stack pointer.
func (cpu *Cpu) Pop() (value uint8, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[REG_SP]++

	return
}

// Depth returns the number of values on the stack.
func (cpu *Cpu) Depth() int {
	sp := int(cpu.Register[REG_SP])
	if sp >= STACK_TOP {
		return 0
	}

	return STACK_TOP - sp
}
