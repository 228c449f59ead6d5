package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
)

var noteColumns = []string{"id", "video_id", "timestamp", "note_text", "created_at"}

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return New(mock), mock
}

func TestRepo_CreateNote(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(createNoteQuery).
		WithArgs("abc123", 42.5, "intro starts here").
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(1), "abc123", 42.5, "intro starts here", created))

	note, err := repo.CreateNote(context.Background(), "abc123", 42.5, "intro starts here")
	require.NoError(t, err)

	assert.Equal(t, entity.Note{
		ID:        1,
		VideoID:   "abc123",
		Timestamp: 42.5,
		Text:      "intro starts here",
		CreatedAt: created,
	}, note)
}

func TestRepo_CreateNote_StorageError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(createNoteQuery).
		WithArgs("abc123", 1.0, "x").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateNote(context.Background(), "abc123", 1.0, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create note")
	assert.NotErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestRepo_GetNotesByVideoID(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getNotesByVideoIDQuery).
		WithArgs("abc123").
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(2), "abc123", 3.0, "first", created).
			AddRow(int64(1), "abc123", 10.5, "second", created))

	notes, err := repo.GetNotesByVideoID(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, int64(2), notes[0].ID)
	assert.Equal(t, 10.5, notes[1].Timestamp)
}

func TestRepo_GetNotesByVideoID_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(getNotesByVideoIDQuery).
		WithArgs("nothing").
		WillReturnRows(pgxmock.NewRows(noteColumns))

	notes, err := repo.GetNotesByVideoID(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestRepo_SearchNotes_WrapsPattern(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(searchNotesQuery).
		WithArgs("%Intro%").
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(1), "abc123", 42.5, "intro starts here", created))

	notes, err := repo.SearchNotes(context.Background(), "Intro")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "intro starts here", notes[0].Text)
}

func TestRepo_SearchNotes_WildcardsPassThrough(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(searchNotesQuery).
		WithArgs("%50%_off%").
		WillReturnRows(pgxmock.NewRows(noteColumns))

	_, err := repo.SearchNotes(context.Background(), "50%_off")
	require.NoError(t, err)
}

func TestRepo_DeleteNote(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(deleteNoteQuery).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteNote(context.Background(), 5))
}

func TestRepo_DeleteNote_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(deleteNoteQuery).
		WithArgs(int64(999999)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteNote(context.Background(), 999999)
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestRepo_UpdateNoteText(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(updateNoteTextQuery).
		WithArgs("new text", int64(1)).
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(1), "abc123", 42.5, "new text", created))

	note, err := repo.UpdateNoteText(context.Background(), 1, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", note.Text)
	assert.Equal(t, created, note.CreatedAt)
}

func TestRepo_UpdateNoteText_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(updateNoteTextQuery).
		WithArgs("new text", int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateNoteText(context.Background(), 42, "new text")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestRepo_GetRecentVideos(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getRecentVideosQuery).
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows([]string{"video_id", "note_count", "last_note_at"}).
			AddRow("v2", int64(1), newer).
			AddRow("v1", int64(3), older))

	videos, err := repo.GetRecentVideos(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, []entity.VideoSummary{
		{VideoID: "v2", NoteCount: 1, LastNoteAt: newer},
		{VideoID: "v1", NoteCount: 3, LastNoteAt: older},
	}, videos)
}
