package emulator

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrMonitorCommand  = errors.New(f("unknown command"))
	ErrMonitorArgument = errors.New(f("bad argument"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%02x %v", err.Pc, err.Err)
	}
	return f("line %d pc 0x%02x %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
