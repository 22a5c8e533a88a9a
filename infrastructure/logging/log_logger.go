package logging

import (
	"log"
	"stegano/application/logging"
)

type LogLogger struct {
}

func NewLogLogger() logging.Logger {
	return &LogLogger{}
}

func (l LogLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

type NopLogger struct {
}

func NewNopLogger() logging.Logger {
	return NopLogger{}
}

func (NopLogger) Printf(string, ...any) {
}
