// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/query"
)

// ListDependencies defines the interface for post listing operations.
type ListDependencies interface {
	ListPosts(ctx context.Context, q query.Query) []post.Post
}

// ListHandler handles post listing requests.
type ListHandler struct {
	deps ListDependencies
}

// NewListHandler creates a new list handler.
func NewListHandler(deps ListDependencies) *ListHandler {
	return &ListHandler{deps: deps}
}

// HandleListPosts handles GET /api/posts?search=&sort=&direction=
// requests. The search filter applies before sorting. A direction value
// is validated only when the request carries both a non-empty sort field
// and an explicit direction parameter; an absent direction means
// ascending.
func (h *ListHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := query.Query{
		Search:    strings.TrimSpace(params.Get("search")),
		Sort:      params.Get("sort"),
		Direction: query.Asc,
	}
	if q.Sort != "" && params.Has("direction") {
		dir, err := query.ParseDirection(params.Get("direction"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadDirection})
			return
		}
		q.Direction = dir
	}

	writeJSON(w, http.StatusOK, h.deps.ListPosts(r.Context(), q))
}
