package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/evgeniy-krivenko/video-notes/pkg/api/notes/v1"
	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

type RouteRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewRouter builds the gin engine. Access logging, request ids and CORS are
// applied outside gin by the HTTP server, so the engine carries only panic
// recovery and the JSON 404.
func NewRouter(mode string, registrars ...RouteRegistrar) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slogx.Error(c.Request.Context(), "recovered from panic",
			slog.String("panic", fmt.Sprint(recovered)),
			slog.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, v1.Error{Detail: "Internal Server Error"})
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.Error{Detail: "Not Found"})
	})

	for _, reg := range registrars {
		reg.RegisterRoutes(r)
	}

	return r
}
