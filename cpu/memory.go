package cpu

const (
	MEMORY_SIZE    = 256  // Bytes of memory.
	REGISTER_COUNT = 8    // General purpose registers.
	REG_IM         = 5    // Interrupt mask, reserved.
	REG_IS         = 6    // Interrupt status, reserved.
	REG_SP         = 7    // Stack pointer.
	STACK_TOP      = 0xf4 // Initial stack pointer; the stack grows down.
)

// ReadMemory reads the byte at addr.
func (cpu *Cpu) ReadMemory(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	value = cpu.Memory[addr]
	return
}

// WriteMemory writes value to the byte at addr.
func (cpu *Cpu) WriteMemory(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	cpu.Memory[addr] = value
	return
}

// GetRegister returns the value of register reg.
func (cpu *Cpu) GetRegister(reg uint8) (value uint8, err error) {
	if int(reg) >= len(cpu.Register) {
		err = ErrRegister(reg)
		return
	}

	value = cpu.Register[reg]
	return
}

// SetRegister sets register reg to value.
func (cpu *Cpu) SetRegister(reg uint8, value uint8) (err error) {
	if int(reg) >= len(cpu.Register) {
		err = ErrRegister(reg)
		return
	}

	cpu.Register[reg] = value
	return
}
