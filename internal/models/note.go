package models

import "time"

// A target has at most one note. CreatedAt is set once and never updated.
type Note struct {
	Id        int64     `json:"id" db:"id"`
	TargetId  int64     `json:"-" db:"target_id"`
	Text      string    `json:"text" db:"note_text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type NoteInput struct {
	Text string `json:"text" binding:"required"`
}
