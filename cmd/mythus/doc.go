// Command mythus is the CLI for the screenplay breakdown backend: scene
// browsing, breakdown management, call-sheet and daily-report drafting, and
// the new-screenplay workflow.
package main
