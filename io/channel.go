// Package io provides the collaborators of the LS-8 machine: the output
// channel that PRN writes to (Tape), and the program image loader (Rom).
package io

// Channel defines the interface for the LS-8 output sink.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send emits a single value to the channel.
	Send(value uint8) error
}
