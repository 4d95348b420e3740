// Package screenplay is the HTTP client for the screenplay backend. It covers
// screenplay lifecycle (create, list, production info), scene reads and CRUD,
// breakdown reads and writes, script upload/processing, and the
// summarization-status poll used by the new-screenplay workflow. The scene
// orchestrator consumes it through its Service interface.
package screenplay
