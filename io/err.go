package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelInvalid = errors.New(f("channel has no output"))

	// Program image errors
	ErrRomLine = errors.New(f("expected eight binary digits"))
	ErrRomFull = errors.New(f("image exceeds memory"))
)

// ErrSyntax locates a malformed line in a program image.
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
