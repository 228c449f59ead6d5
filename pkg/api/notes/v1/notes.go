// Package v1 holds the JSON contract of the notes HTTP API. The server binds
// and renders these types; the client decodes them.
package v1

import "time"

// CreateNoteRequest uses pointer fields so binding can tell a missing field
// from its zero value: timestamp 0 and an empty note_text are valid input.
type CreateNoteRequest struct {
	VideoID   *string  `json:"video_id" binding:"required,max=20"`
	Timestamp *float64 `json:"timestamp" binding:"required"`
	NoteText  *string  `json:"note_text" binding:"required"`
}

// UpdateNoteRequest is read from the query string or a form body.
type UpdateNoteRequest struct {
	NoteText *string `form:"note_text" binding:"required"`
}

type Note struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"video_id"`
	Timestamp float64   `json:"timestamp"`
	NoteText  string    `json:"note_text"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoSummary struct {
	VideoID    string    `json:"video_id"`
	NoteCount  int64     `json:"note_count"`
	LastNoteAt time.Time `json:"last_note_at"`
}

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Detail string `json:"detail"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
