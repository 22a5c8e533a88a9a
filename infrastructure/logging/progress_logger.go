package logging

import (
	"fmt"
	"stegano/application/logging"
)

// ProgressLogger forwards every formatted line to a status sink, and to an
// optional base logger. A panicking sink is swallowed: status output never
// changes the outcome of the operation being reported.
type ProgressLogger struct {
	sink func(string)
	base logging.Logger
}

func NewProgressLogger(sink func(string), base logging.Logger) logging.Logger {
	return &ProgressLogger{
		sink: sink,
		base: base,
	}
}

func (p *ProgressLogger) Printf(format string, v ...any) {
	if p.base != nil {
		p.base.Printf(format, v...)
	}
	if p.sink == nil {
		return
	}
	p.emit(fmt.Sprintf(format, v...))
}

func (p *ProgressLogger) emit(line string) {
	defer func() {
		_ = recover()
	}()
	p.sink(line)
}
