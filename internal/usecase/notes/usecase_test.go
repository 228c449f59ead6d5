package notes_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	"github.com/evgeniy-krivenko/video-notes/internal/usecase/notes"
)

// memRepo keeps notes in memory and mirrors the ordering rules of the SQL
// queries.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	notes  map[int64]entity.Note
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		notes: make(map[int64]entity.Note),
	}
}

func (r *memRepo) CreateNote(_ context.Context, videoID string, timestamp float64, text string) (entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return entity.Note{}, r.err
	}

	r.nextID++
	r.now = r.now.Add(time.Second)
	n := entity.Note{ID: r.nextID, VideoID: videoID, Timestamp: timestamp, Text: text, CreatedAt: r.now}
	r.notes[n.ID] = n

	return n, nil
}

func (r *memRepo) filter(keep func(entity.Note) bool) []entity.Note {
	out := make([]entity.Note, 0)
	for _, n := range r.notes {
		if keep(n) {
			out = append(out, n)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memRepo) GetNotesByVideoID(_ context.Context, videoID string) ([]entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.filter(func(n entity.Note) bool { return n.VideoID == videoID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	return out, r.err
}

func (r *memRepo) SearchNotes(_ context.Context, query string) ([]entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	out := r.filter(func(n entity.Note) bool { return strings.Contains(strings.ToLower(n.Text), q) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, r.err
}

func (r *memRepo) DeleteNote(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return entity.ErrNoteNotFound
	}
	delete(r.notes, id)

	return nil
}

func (r *memRepo) UpdateNoteText(_ context.Context, id int64, text string) (entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return entity.Note{}, entity.ErrNoteNotFound
	}
	n.Text = text
	r.notes[id] = n

	return n, nil
}

func (r *memRepo) GetRecentVideos(_ context.Context, limit int) ([]entity.VideoSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byVideo := make(map[string]*entity.VideoSummary)
	for _, n := range r.notes {
		s, ok := byVideo[n.VideoID]
		if !ok {
			s = &entity.VideoSummary{VideoID: n.VideoID}
			byVideo[n.VideoID] = s
		}
		s.NoteCount++
		if n.CreatedAt.After(s.LastNoteAt) {
			s.LastNoteAt = n.CreatedAt
		}
	}

	out := make([]entity.VideoSummary, 0, len(byVideo))
	for _, s := range byVideo {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastNoteAt.After(out[j].LastNoteAt) })

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func newUsecase(t *testing.T) (*notes.Usecase, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	uc, err := notes.New(notes.NewOptions(repo))
	require.NoError(t, err)

	return uc, repo
}

func TestNew_RequiresRepo(t *testing.T) {
	_, err := notes.New(notes.NewOptions(nil))
	assert.Error(t, err)
}

func TestUsecase_CreateThenList(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateNote(ctx, "abc123", 42.5, "intro starts here")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, created.ID, int64(1))
	assert.False(t, created.CreatedAt.IsZero())

	list, err := uc.GetNotesByVideoID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []entity.Note{created}, list)
}

func TestUsecase_ListSortedByTimestamp(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	for _, ts := range []float64{30, 5.5, 120, 5.5, 0} {
		_, err := uc.CreateNote(ctx, "vid", ts, "note")
		require.NoError(t, err)
	}
	_, err := uc.CreateNote(ctx, "other", 1, "note")
	require.NoError(t, err)

	list, err := uc.GetNotesByVideoID(ctx, "vid")
	require.NoError(t, err)
	require.Len(t, list, 5)

	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Timestamp, list[i].Timestamp)
	}
}

func TestUsecase_SearchCaseInsensitive(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	want, err := uc.CreateNote(ctx, "v1", 1, "The Quick brown fox")
	require.NoError(t, err)
	_, err = uc.CreateNote(ctx, "v2", 2, "lazy dog")
	require.NoError(t, err)

	found, err := uc.SearchNotes(ctx, "qUICK")
	require.NoError(t, err)
	assert.Equal(t, []entity.Note{want}, found)
}

func TestUsecase_DeleteNotFound(t *testing.T) {
	uc, _ := newUsecase(t)

	err := uc.DeleteNote(context.Background(), 999999)
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestUsecase_UpdateOnlyChangesText(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	orig, err := uc.CreateNote(ctx, "abc123", 42.5, "before")
	require.NoError(t, err)

	updated, err := uc.UpdateNoteText(ctx, orig.ID, "after")
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Text)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, orig.VideoID, updated.VideoID)
	assert.Equal(t, orig.Timestamp, updated.Timestamp)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)

	_, err = uc.UpdateNoteText(ctx, orig.ID+100, "nope")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestUsecase_RecentVideosLimit(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	for i := range 25 {
		_, err := uc.CreateNote(ctx, fmt.Sprintf("video-%02d", i), float64(i), "note")
		require.NoError(t, err)
	}

	videos, err := uc.GetRecentVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, notes.RecentVideosLimit)

	assert.Equal(t, "video-24", videos[0].VideoID)
	for i := 1; i < len(videos); i++ {
		assert.False(t, videos[i].LastNoteAt.After(videos[i-1].LastNoteAt))
	}
}

func TestUsecase_WrapsStorageErrors(t *testing.T) {
	uc, repo := newUsecase(t)
	repo.err = errors.New("connection refused")

	_, err := uc.CreateNote(context.Background(), "v", 1, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecase create note")
	assert.ErrorIs(t, err, repo.err)
}
