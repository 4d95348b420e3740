// Package scenes owns the client-side view of a screenplay's scenes: the
// summary list, the selected detail, and the per-scene breakdown cache.
//
// The Orchestrator is the single writer of this state. It layers in-flight
// tracking on top of the backend client so concurrent callers never issue
// duplicate requests for the same scene, synthesizes safe cache entries when
// individual fetches fail during bulk loads, and applies optimistic updates
// with reconcile-on-failure semantics for breakdown writes. Readers take
// immutable Snapshots and derive filtered/sorted views from them.
package scenes
