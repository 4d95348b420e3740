// Package services defines shared utilities consumed by the backend clients
// and the state orchestrators layered on top of them.
//
// Key responsibilities:
//   - Context helpers that stamp screenplay IDs, scene numbers, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (validation vs not-found vs transient) with errors.Is.
//
// Use these helpers when wiring new backend operations so error handling and
// observability stay uniform across the tool.
package services
