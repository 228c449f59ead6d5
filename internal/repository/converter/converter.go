package converter

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
)

// NoteRow mirrors one row of the notes table.
type NoteRow struct {
	ID        int64
	VideoID   string
	Timestamp float64
	NoteText  string
	CreatedAt pgtype.Timestamp
}

// VideoSummaryRow mirrors one row of the recent videos aggregate.
type VideoSummaryRow struct {
	VideoID    string
	NoteCount  int64
	LastNoteAt pgtype.Timestamp
}

func ConvertNoteToEntity(row NoteRow) entity.Note {
	return entity.Note{
		ID:        row.ID,
		VideoID:   row.VideoID,
		Timestamp: row.Timestamp,
		Text:      row.NoteText,
		CreatedAt: ConvertTimestampToTime(row.CreatedAt),
	}
}

func ConvertNotesToEntity(rows []NoteRow) []entity.Note {
	notes := make([]entity.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, ConvertNoteToEntity(row))
	}

	return notes
}

func ConvertVideoSummaryToEntity(row VideoSummaryRow) entity.VideoSummary {
	return entity.VideoSummary{
		VideoID:    row.VideoID,
		NoteCount:  row.NoteCount,
		LastNoteAt: ConvertTimestampToTime(row.LastNoteAt),
	}
}

func ConvertVideoSummariesToEntity(rows []VideoSummaryRow) []entity.VideoSummary {
	summaries := make([]entity.VideoSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ConvertVideoSummaryToEntity(row))
	}

	return summaries
}

func ConvertTimestampToTime(t pgtype.Timestamp) time.Time {
	if !t.Valid {
		return time.Time{}
	}

	return t.Time
}

func ConvertTimeToTimestamp(t time.Time) pgtype.Timestamp {
	return pgtype.Timestamp{Time: t, Valid: !t.IsZero()}
}
