// Package dailyreport models the daily production report as a reducer-driven
// document store, structurally parallel to internal/callsheet: flat shoot-day
// and schedule fields plus one characters table, mutated only through Reduce.
package dailyreport
