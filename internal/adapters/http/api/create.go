// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// CreateDependencies defines the interface for post creation operations.
type CreateDependencies interface {
	CreatePost(ctx context.Context, fields map[string]any) post.Post
}

// CreateHandler handles post creation requests.
type CreateHandler struct {
	deps CreateDependencies
}

// NewCreateHandler creates a new create handler.
func NewCreateHandler(deps CreateDependencies) *CreateHandler {
	return &CreateHandler{deps: deps}
}

// HandleCreatePost handles POST /api/posts requests. Required fields are
// checked for key presence only, so an explicit empty string passes, and
// an empty object reports both title and content as missing. Extra
// fields are stored verbatim.
func (h *CreateHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoData})
		return
	}
	if missing := post.Post(fields).MissingFields(); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:         msgMissingFields,
			MissingFields: missing,
		})
		return
	}
	writeJSON(w, http.StatusCreated, h.deps.CreatePost(r.Context(), fields))
}
