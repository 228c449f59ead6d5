package notes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/evgeniy-krivenko/video-notes/internal/api/notes/converter"
	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
)

type notesUsecase interface {
	CreateNote(ctx context.Context, videoID string, timestamp float64, text string) (entity.Note, error)
	GetNotesByVideoID(ctx context.Context, videoID string) ([]entity.Note, error)
	SearchNotes(ctx context.Context, query string) ([]entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	UpdateNoteText(ctx context.Context, id int64, text string) (entity.Note, error)
	GetRecentVideos(ctx context.Context) ([]entity.VideoSummary, error)
}

type Handler struct {
	uc notesUsecase
}

func New(uc notesUsecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/notes", h.CreateNote)
	r.GET("/notes/search/:query", h.SearchNotes)
	r.GET("/notes/:video_id", h.GetNotes)
	r.DELETE("/notes/:note_id", h.DeleteNote)
	r.PUT("/notes/:note_id", h.UpdateNote)
	r.GET("/videos/recent", h.GetRecentVideos)
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req v1.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.uc.CreateNote(c.Request.Context(), *req.VideoID, *req.Timestamp, *req.NoteText)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ConvertNoteToAPI(note))
}

func (h *Handler) GetNotes(c *gin.Context) {
	notes, err := h.uc.GetNotesByVideoID(c.Request.Context(), c.Param("video_id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ConvertNotesToAPI(notes))
}

func (h *Handler) SearchNotes(c *gin.Context) {
	notes, err := h.uc.SearchNotes(c.Request.Context(), c.Param("query"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ConvertNotesToAPI(notes))
}

func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteNote(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.Message{Message: "Note deleted successfully"})
}

func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req v1.UpdateNoteRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.uc.UpdateNoteText(c.Request.Context(), id, *req.NoteText)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ConvertNoteToAPI(note))
}

func (h *Handler) GetRecentVideos(c *gin.Context) {
	videos, err := h.uc.GetRecentVideos(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ConvertVideoSummariesToAPI(videos))
}

func noteIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("note_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Detail: "note_id must be an integer"})
		return 0, false
	}

	return id, true
}
