package entity

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

// Note is a timestamped annotation on a video. Only Text changes after
// creation.
type Note struct {
	ID        int64
	VideoID   string
	Timestamp float64
	Text      string
	CreatedAt time.Time
}

// VideoSummary aggregates the notes of one video.
type VideoSummary struct {
	VideoID    string
	NoteCount  int64
	LastNoteAt time.Time
}
