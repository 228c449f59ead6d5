package notes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

// RecentVideosLimit caps the recent videos rollup.
const RecentVideosLimit = 20

type notesRepository interface {
	CreateNote(ctx context.Context, videoID string, timestamp float64, text string) (entity.Note, error)
	GetNotesByVideoID(ctx context.Context, videoID string) ([]entity.Note, error)
	SearchNotes(ctx context.Context, query string) ([]entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	UpdateNoteText(ctx context.Context, id int64, text string) (entity.Note, error)
	GetRecentVideos(ctx context.Context, limit int) ([]entity.VideoSummary, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo notesRepository `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

func (u *Usecase) CreateNote(ctx context.Context, videoID string, timestamp float64, text string) (entity.Note, error) {
	note, err := u.repo.CreateNote(ctx, videoID, timestamp, text)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	slogx.Info(ctx, "success to create note", slogx.NoteID(note.ID), slogx.VideoID(videoID))
	return note, nil
}

func (u *Usecase) GetNotesByVideoID(ctx context.Context, videoID string) ([]entity.Note, error) {
	notes, err := u.repo.GetNotesByVideoID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("usecase get notes by video: %w", err)
	}

	return notes, nil
}

func (u *Usecase) SearchNotes(ctx context.Context, query string) ([]entity.Note, error) {
	notes, err := u.repo.SearchNotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("usecase search notes: %w", err)
	}

	slogx.Debug(ctx, "search notes", slog.String("query", query), slog.Int("found", len(notes)))
	return notes, nil
}

func (u *Usecase) DeleteNote(ctx context.Context, id int64) error {
	if err := u.repo.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}

	slogx.Info(ctx, "success to delete note", slogx.NoteID(id))
	return nil
}

func (u *Usecase) UpdateNoteText(ctx context.Context, id int64, text string) (entity.Note, error) {
	note, err := u.repo.UpdateNoteText(ctx, id, text)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note text: %w", err)
	}

	slogx.Info(ctx, "success to update note", slogx.NoteID(id))
	return note, nil
}

func (u *Usecase) GetRecentVideos(ctx context.Context) ([]entity.VideoSummary, error) {
	videos, err := u.repo.GetRecentVideos(ctx, RecentVideosLimit)
	if err != nil {
		return nil, fmt.Errorf("usecase get recent videos: %w", err)
	}

	return videos, nil
}
