package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evgeniy-krivenko/video-notes/internal/entity"
	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

const (
	detailNoteNotFound = "Note not found"
	detailInternal     = "Internal Server Error"
)

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, v1.Error{Detail: detailNoteNotFound})
	default:
		slogx.Error(c.Request.Context(), "handle notes request", slogx.Err(err))
		c.JSON(http.StatusInternalServerError, v1.Error{Detail: detailInternal})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, v1.Error{Detail: err.Error()})
}
