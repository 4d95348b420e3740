// Package workflow drives the new-screenplay wizard: production details,
// script upload, backend processing, scene review, completion. A Runner
// sequences the backend calls for each step, records field-scoped errors and
// confirmation messages, and bounds the summarization-status poll so a stuck
// backend fails the processing step instead of hanging the wizard.
package workflow
