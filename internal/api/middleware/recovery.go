package middleware

import (
	"log/slog"
	"net/http"

	"github.com/courtshot/courtshot/internal/api/apierr"
	"github.com/courtshot/courtshot/internal/middleware"
)

// Recovery adapts the shared panic recovery to the API's JSON error
// envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
