// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/repository"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// GetDependencies defines the interface for single post reads.
type GetDependencies interface {
	GetPost(ctx context.Context, id int64) (post.Post, error)
}

// GetHandler handles single post requests.
type GetHandler struct {
	deps GetDependencies
}

// NewGetHandler creates a new get handler.
func NewGetHandler(deps GetDependencies) *GetHandler {
	return &GetHandler{deps: deps}
}

// HandleGetPost handles GET /api/posts/{id} requests.
func (h *GetHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, idStr, ok := postID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
		return
	}
	p, err := h.deps.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal, Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
