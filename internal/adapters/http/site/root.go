// Package site serves the embedded dashboard page.
package site

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Register attaches the dashboard routes to the router. The page at /
// renders the post collection and follows the live change feed; its
// assets are served under /static/.
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.FileServer(FS())
	r.Path("/").Handler(files).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", files)).Methods(http.MethodGet)
}
