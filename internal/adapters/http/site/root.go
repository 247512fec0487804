// Package site serves the embedded card gallery.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the gallery routes to r. The gallery is static and
// reads everything from the JSON API.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.FileServer(FS())
	r.Get("/", files.ServeHTTP)
	r.Get("/static/*", http.StripPrefix("/static", files).ServeHTTP)
}
