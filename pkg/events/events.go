// Package events defines the note-activity events published on the
// in-process bus after generation and chat flows persist content.
package events

import "time"

const (
	TypeNoteAppended  = "NOTE_APPENDED"
	TypeChatTurnSaved = "CHAT_TURN_SAVED"
)

// NoteActivity is the payload for both activity event types.
type NoteActivity struct {
	Type       string    `json:"type"`
	User       string    `json:"user"`
	Note       string    `json:"note"`
	Filename   string    `json:"filename"`
	OccurredAt time.Time `json:"occurred_at"`
}
