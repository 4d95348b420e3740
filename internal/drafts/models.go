package drafts

import (
	"time"

	"mythus/internal/sheet"
)

// Kind discriminates the two draft document types.
type Kind string

const (
	KindCallSheet   Kind = "callsheet"
	KindDailyReport Kind = "report"
)

// Valid reports whether the kind is one of the known document types.
func (k Kind) Valid() bool {
	return k == KindCallSheet || k == KindDailyReport
}

// Draft is one locally saved document.
type Draft struct {
	ID           string
	Kind         Kind
	ScreenplayID string
	Title        string
	Document     sheet.Document
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
