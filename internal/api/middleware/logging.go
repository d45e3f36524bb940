package middleware

import (
	"log/slog"
	"net/http"

	"github.com/courtshot/courtshot/internal/middleware"
)

// Logging wires the shared access-log middleware into the API tree.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
