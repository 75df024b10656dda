// Package logging provides concrete implementations of the flashbooth.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes leveled, human-readable records through slog and tint
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
