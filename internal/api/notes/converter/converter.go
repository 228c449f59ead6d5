package converter

import (
	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
)

func ConvertNoteToAPI(note entity.Note) v1.Note {
	return v1.Note{
		ID:        note.ID,
		VideoID:   note.VideoID,
		Timestamp: note.Timestamp,
		NoteText:  note.Text,
		CreatedAt: note.CreatedAt,
	}
}

// ConvertNotesToAPI never returns nil, so an empty result renders as [].
func ConvertNotesToAPI(notes []entity.Note) []v1.Note {
	out := make([]v1.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, ConvertNoteToAPI(n))
	}

	return out
}

func ConvertVideoSummaryToAPI(s entity.VideoSummary) v1.VideoSummary {
	return v1.VideoSummary{
		VideoID:    s.VideoID,
		NoteCount:  s.NoteCount,
		LastNoteAt: s.LastNoteAt,
	}
}

func ConvertVideoSummariesToAPI(summaries []entity.VideoSummary) []v1.VideoSummary {
	out := make([]v1.VideoSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ConvertVideoSummaryToAPI(s))
	}

	return out
}
