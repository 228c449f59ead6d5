package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	"github.com/evgeniy-krivenko/video-notes/internal/repository/converter"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

const (
	createNoteQuery = `INSERT INTO notes (video_id, timestamp, note_text)
VALUES ($1, $2, $3)
RETURNING id, video_id, timestamp, note_text, created_at`

	getNotesByVideoIDQuery = `SELECT id, video_id, timestamp, note_text, created_at
FROM notes
WHERE video_id = $1
ORDER BY timestamp ASC`

	// The pattern is passed through verbatim: % and _ inside the query keep
	// their ILIKE meaning.
	searchNotesQuery = `SELECT id, video_id, timestamp, note_text, created_at
FROM notes
WHERE note_text ILIKE $1
ORDER BY created_at DESC`

	deleteNoteQuery = `DELETE FROM notes WHERE id = $1`

	updateNoteTextQuery = `UPDATE notes
SET note_text = $1
WHERE id = $2
RETURNING id, video_id, timestamp, note_text, created_at`

	getRecentVideosQuery = `SELECT video_id, COUNT(*) AS note_count, MAX(created_at) AS last_note_at
FROM notes
GROUP BY video_id
ORDER BY last_note_at DESC
LIMIT $1`
)

func scanNote(row pgx.Row) (converter.NoteRow, error) {
	var n converter.NoteRow
	err := row.Scan(&n.ID, &n.VideoID, &n.Timestamp, &n.NoteText, &n.CreatedAt)
	return n, err
}

func scanNotes(rows pgx.CollectableRow) (converter.NoteRow, error) {
	return scanNote(rows)
}

func scanVideoSummary(row pgx.CollectableRow) (converter.VideoSummaryRow, error) {
	var s converter.VideoSummaryRow
	err := row.Scan(&s.VideoID, &s.NoteCount, &s.LastNoteAt)
	return s, err
}

func (r *Repo) CreateNote(ctx context.Context, videoID string, timestamp float64, text string) (entity.Note, error) {
	row, err := scanNote(r.db.QueryRow(ctx, createNoteQuery, videoID, timestamp, text))
	if err != nil {
		return entity.Note{}, fmt.Errorf("create note: %v", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.NoteID(row.ID), slogx.VideoID(videoID))

	return converter.ConvertNoteToEntity(row), nil
}

func (r *Repo) GetNotesByVideoID(ctx context.Context, videoID string) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx, getNotesByVideoIDQuery, videoID)
	if err != nil {
		return nil, fmt.Errorf("get notes by video: %v", err)
	}

	notes, err := pgx.CollectRows(rows, scanNotes)
	if err != nil {
		return nil, fmt.Errorf("collect notes by video: %v", err)
	}

	return converter.ConvertNotesToEntity(notes), nil
}

func (r *Repo) SearchNotes(ctx context.Context, query string) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx, searchNotesQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search notes: %v", err)
	}

	notes, err := pgx.CollectRows(rows, scanNotes)
	if err != nil {
		return nil, fmt.Errorf("collect searched notes: %v", err)
	}

	return converter.ConvertNotesToEntity(notes), nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteNoteQuery, id)
	if err != nil {
		return fmt.Errorf("delete note: %v", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

func (r *Repo) UpdateNoteText(ctx context.Context, id int64, text string) (entity.Note, error) {
	row, err := scanNote(r.db.QueryRow(ctx, updateNoteTextQuery, text, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("update note text: %v", err)
	}

	return converter.ConvertNoteToEntity(row), nil
}

func (r *Repo) GetRecentVideos(ctx context.Context, limit int) ([]entity.VideoSummary, error) {
	rows, err := r.db.Query(ctx, getRecentVideosQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent videos: %v", err)
	}

	summaries, err := pgx.CollectRows(rows, scanVideoSummary)
	if err != nil {
		return nil, fmt.Errorf("collect recent videos: %v", err)
	}

	return converter.ConvertVideoSummariesToEntity(summaries), nil
}
