package logging

import (
	"log/slog"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

var (
	_ flashbooth.Logger = (*ConsoleLogger)(nil)
	_ flashbooth.Logger = NullLogger{}
)

// NullLogger drops every message. The zero value is ready to use.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})    {}
func (NullLogger) Error(string, ...interface{})   {}

// Slog returns a slog.Logger that discards its records.
func (NullLogger) Slog() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
