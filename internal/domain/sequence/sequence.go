package sequence

import (
	"context"
	"fmt"
	"time"
)

// DocSequence backs the human-readable document numbers. One row per
// scope (e.g. "PN-2024", "DN-2024-01"); incremented inside the same
// transaction that inserts the document, so a rollback returns the number
// with it.
type DocSequence struct {
	Scope     string `gorm:"primaryKey;column:scope;size:16"`
	NextValue int    `gorm:"column:next_value;not null"`
}

func (DocSequence) TableName() string { return "doc_sequences" }

type Repository interface {
	// Next increments and returns the counter for scope, starting at 1.
	Next(ctx context.Context, scope string) (int, error)
}

// RequestScope, NoteScope and DebitNoteScope derive the counter scopes
// from the document date.
func RequestScope(at time.Time) string { return fmt.Sprintf("REQ-%d", at.Year()) }
func NoteScope(at time.Time) string    { return fmt.Sprintf("PN-%d", at.Year()) }
func DebitNoteScope(at time.Time) string {
	return fmt.Sprintf("DN-%d-%02d", at.Year(), int(at.Month()))
}

// FormatRequestNumber renders REQ-{year}-{seq:3}.
func FormatRequestNumber(at time.Time, seq int) string {
	return fmt.Sprintf("REQ-%d-%03d", at.Year(), seq)
}

// FormatNoteNumber renders PN-{year}-{seq:3}.
func FormatNoteNumber(at time.Time, seq int) string {
	return fmt.Sprintf("PN-%d-%03d", at.Year(), seq)
}

// FormatDebitNoteNumber renders DN-{year}-{month:2}-{seq:3}.
func FormatDebitNoteNumber(at time.Time, seq int) string {
	return fmt.Sprintf("DN-%d-%02d-%03d", at.Year(), int(at.Month()), seq)
}
