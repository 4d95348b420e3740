// Package sheetfile reads and writes sheet documents as JSON or YAML files.
//
// Import is the persistence boundary for call sheets and daily production
// reports: files are decoded, shape-validated against the owning store's
// schema, and only then handed to the reducer as a Load action. Validation
// failures are tagged services.ErrValidation so callers can surface them
// without touching current state.
package sheetfile
