package cpu

// State is the run loop state of the machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY  = State(0) // ready
	STATE_HALTED = State(1) // halted
)
