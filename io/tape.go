package io

import (
	"fmt"
	"io"
)

// Tape writes every value sent to it as a decimal integer on its own line.
type Tape struct {
	Output io.Writer

	Sent int // Number of values written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind clears the sent counter. Written output cannot be taken back.
func (tc *Tape) Rewind() {
	tc.Sent = 0
}

// Send writes value to the output stream, newline terminated.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelInvalid
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Sent++

	return
}
