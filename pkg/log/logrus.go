package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrus returns a Logger backed by logrus, writing plain text
// lines to w. Debug messages are only written when debug is true.
func NewLogrus(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
