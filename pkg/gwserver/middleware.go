package gwserver

import (
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/evgeniy-krivenko/video-notes/pkg/logger/slogx"
)

const RequestIDHeader = "X-Request-ID"

// CORS allows the given origins with every method and header, credentials
// included. A "*" entry allows any origin; the origin is echoed back
// because browsers reject a literal "*" on credentialed responses.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}

	if slices.Contains(allowedOrigins, "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = allowedOrigins
	}

	return cors.New(opts).Handler
}

// RequestID propagates the caller's X-Request-ID or mints one, and stores it
// in the request context for slogx.ContextHandler.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(slogx.WithRequestID(r.Context(), id)))
	})
}
