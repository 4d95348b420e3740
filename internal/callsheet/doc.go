// Package callsheet models the shoot-day call sheet as a reducer-driven
// document store.
//
// State is a sheet.Document: flat shoot-day fields plus four row tables
// (scenes, cast, feature_junior, advance_schedule), each kept non-empty so
// grid renderers always have a row. All mutation flows through Reduce with a
// typed action; Reduce is pure and total, and unknown actions return the
// state unchanged.
package callsheet
