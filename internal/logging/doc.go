// Package logging builds the slog loggers used across the tool.
//
// Two output formats are supported: a human console format (timestamp, level
// label, component prefix, k=v attributes) and line-delimited JSON. Context
// helpers lift correlation metadata stamped by internal/services into logger
// attributes so backend calls can be traced end to end.
package logging
