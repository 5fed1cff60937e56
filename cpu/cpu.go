package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Channel is the output sink written by PRN.
type Channel io.Channel

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [MEMORY_SIZE]uint8    // Program, data and stack.
	Register [REGISTER_COUNT]uint8 // Register bank; r7 is the stack pointer.
	Pc       int                   // Address of the next instruction.
	Fl       uint8                 // Flags, reserved for comparison opcodes.
	Running  bool                  // Cleared by HLT or a fault.

	Output Channel // Receives PRN values.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines returns the symbols the assembler predefines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
		"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
	}
	for op, inst := range instructionSet {
		defines["OP_"+inst.Name] = fmt.Sprintf("0x%02x", uint8(op))
	}

	return maps.All(defines)
}

// State returns the run loop state.
func (cpu *Cpu) State() State {
	if cpu.Running {
		return STATE_READY
	}

	return STATE_HALTED
}

// Reset the CPU state.
// - Zeros memory, the registers and the flags.
// - Sets the stack pointer to STACK_TOP and the PC to 0.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = STACK_TOP
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.Running = true
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load copies a program image into memory starting at address 0.
func (cpu *Cpu) Load(image []uint8) (err error) {
	if len(image) > len(cpu.Memory) {
		err = ErrImageTooLarge
		return
	}

	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// Fetch reads the instruction at the PC: the opcode, then exactly the
// operand bytes its instruction set entry declares.
func (cpu *Cpu) Fetch() (code Code, err error) {
	op, err := cpu.ReadMemory(cpu.Pc)
	if err != nil {
		return
	}
	code.Opcode = Opcode(op)

	inst, ok := instructionSet[code.Opcode]
	if !ok {
		err = ErrOpcode(code.Opcode)
		return
	}

	code.Operands = make([]uint8, len(inst.Args))
	for n := range code.Operands {
		code.Operands[n], err = cpu.ReadMemory(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction, and advances the PC
// past it unless the instruction set the PC itself.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	inst, ok := instructionSet[code.Opcode]
	if !ok {
		err = ErrOpcode(code.Opcode)
		return
	}

	if len(code.Operands) != len(inst.Args) {
		err = ErrOperandCount
		return
	}

	next_pc := cpu.Pc + inst.Size()

	err = inst.Execute(cpu, code.Operands)
	if err != nil {
		return
	}

	if !inst.Jump {
		cpu.Pc = next_pc
	}

	cpu.Ticks++

	return
}

// Tick executes a single CPU instruction cycle.
//
// A halted CPU returns ErrHalted and is left untouched. Any other error
// halts the CPU and is returned as an *ErrFault.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	pc := cpu.Pc

	code, err := cpu.Fetch()
	if err == nil {
		err = cpu.Execute(code)
	}

	if err != nil {
		cpu.Running = false
		err = &ErrFault{Pc: pc, Code: code, Err: err}
	}

	return
}

// Run ticks the CPU until it halts. It returns the fault that halted it,
// if any.
func (cpu *Cpu) Run() (err error) {
	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Disassemble returns the assembly text of the instruction at pc, and its
// size in bytes. Unknown opcodes disassemble as a single data byte.
func (cpu *Cpu) Disassemble(pc int) (text string, size int) {
	op, err := cpu.ReadMemory(pc)
	if err != nil {
		return "--", 1
	}

	inst, ok := instructionSet[Opcode(op)]
	if !ok {
		return fmt.Sprintf("DB 0x%02X", op), 1
	}

	code := Code{Opcode: Opcode(op)}
	for n := range len(inst.Args) {
		var operand uint8
		operand, err = cpu.ReadMemory(pc + 1 + n)
		if err != nil {
			return inst.Name + " --", inst.Size()
		}
		code.Operands = append(code.Operands, operand)
	}

	return code.String(), inst.Size()
}

// Trace returns a single line with the PC, the three bytes at the PC and
// all of the registers, in hex. Bytes past the end of memory show as --.
func (cpu *Cpu) Trace() string {
	var text strings.Builder

	fmt.Fprintf(&text, "TRACE: %02X |", cpu.Pc)
	for n := range 3 {
		value, err := cpu.ReadMemory(cpu.Pc + n)
		if err != nil {
			text.WriteString(" --")
		} else {
			fmt.Fprintf(&text, " %02X", value)
		}
	}
	text.WriteString(" |")
	for _, reg := range cpu.Register {
		fmt.Fprintf(&text, " %02X", reg)
	}

	return text.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
		"state",
		"ticks",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = fmt.Sprintf("%08b", cpu.Fl)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X (%d)", val, val)
		case "stack":
			val, err := cpu.Peek()
			if err == nil {
				strval = fmt.Sprintf("%02X [%d]", val, cpu.Depth())
			} else {
				strval = "--"
			}
		case "state":
			strval = cpu.State().String()
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

func (cpu *Cpu) opHlt(args []uint8) (err error) {
	cpu.Running = false
	return
}

func (cpu *Cpu) opLdi(args []uint8) (err error) {
	return cpu.SetRegister(args[0], args[1])
}

func (cpu *Cpu) opPrn(args []uint8) (err error) {
	value, err := cpu.GetRegister(args[0])
	if err != nil {
		return
	}

	if cpu.Output == nil {
		err = io.ErrChannelInvalid
		return
	}

	return cpu.Output.Send(value)
}

// opPush decrements SP first, so PUSH R7 stores the decremented pointer.
func (cpu *Cpu) opPush(args []uint8) (err error) {
	if int(args[0]) >= len(cpu.Register) {
		err = ErrRegister(args[0])
		return
	}

	sp := cpu.Register[REG_SP]
	if sp == 0 {
		err = ErrStackOverflow
		return
	}

	cpu.Register[REG_SP] = sp - 1
	cpu.Memory[sp-1] = cpu.Register[args[0]]

	return
}

// opPop increments SP last, so POP R7 leaves SP one past the popped value.
func (cpu *Cpu) opPop(args []uint8) (err error) {
	if int(args[0]) >= len(cpu.Register) {
		err = ErrRegister(args[0])
		return
	}

	value, err := cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register[args[0]] = value
	cpu.Register[REG_SP]++

	return
}

func (cpu *Cpu) opCall(args []uint8) (err error) {
	target, err := cpu.GetRegister(args[0])
	if err != nil {
		return
	}

	ret := cpu.Pc + 2
	if ret >= len(cpu.Memory) {
		err = ErrAddress(ret)
		return
	}

	err = cpu.Push(uint8(ret))
	if err != nil {
		return
	}

	cpu.Pc = int(target)

	return
}

func (cpu *Cpu) opRet(args []uint8) (err error) {
	ret, err := cpu.Pop()
	if err != nil {
		return
	}

	cpu.Pc = int(ret)

	return
}
