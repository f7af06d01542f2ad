// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/repository"
)

// DeleteDependencies defines the interface for post deletion.
type DeleteDependencies interface {
	DeletePost(ctx context.Context, id int64) error
}

// DeleteHandler handles post deletion requests.
type DeleteHandler struct {
	deps DeleteDependencies
}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler(deps DeleteDependencies) *DeleteHandler {
	return &DeleteHandler{deps: deps}
}

// HandleDeletePost handles DELETE /api/posts/{id} requests. Deleting an
// id that is already gone keeps returning the not-found body.
func (h *DeleteHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, idStr, ok := postID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
		return
	}
	if err := h.deps.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal, Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Post with id %s has been deleted successfully.", idStr),
	})
}
