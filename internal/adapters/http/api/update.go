// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/repository"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// UpdateDependencies defines the interface for post update operations.
type UpdateDependencies interface {
	UpdatePost(ctx context.Context, id int64, fields map[string]any) (post.Post, error)
}

// UpdateHandler handles post update requests.
type UpdateHandler struct {
	deps UpdateDependencies
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(deps UpdateDependencies) *UpdateHandler {
	return &UpdateHandler{deps: deps}
}

// HandleUpdatePost handles PUT /api/posts/{id} requests. The body is
// checked before the id is resolved, so a body-less request on an
// unknown id still reports the missing body. Every supplied field is
// merged into the stored post except id, which stays server-owned. An
// empty object counts as no data.
func (h *UpdateHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(r)
	if err != nil || len(fields) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoData})
		return
	}
	id, idStr, ok := postID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
		return
	}
	updated, err := h.deps.UpdatePost(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundResponse(idStr))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal, Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
