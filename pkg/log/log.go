package log

import (
	"fmt"
	"io"
	"os"
)

// Logger is the logging interface used throughout the emulator.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	out   io.Writer
	debug bool
}

// New returns a Logger writing info and error messages to stdout.
func New() Logger {
	return &logger{out: os.Stdout}
}

// NewWithWriter returns a Logger writing to w. Debug messages are
// only written when debug is true.
func NewWithWriter(w io.Writer, debug bool) Logger {
	return &logger{out: w, debug: debug}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[DEBUG]\t"+format+"\n", args...)
}
