package model

import "time"

// Draft is a named snapshot of the canonical HTML string, persisted
// independently of the live editing session.
type Draft struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxDrafts bounds the persisted draft collection. Saving beyond the bound
// evicts the oldest draft.
const MaxDrafts = 5

// DefaultDraftName derives a label for drafts saved without a name.
func DefaultDraftName(at time.Time) string {
	return "Draft " + at.Local().Format("1/2/2006, 3:04:05 PM")
}
