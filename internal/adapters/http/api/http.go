// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListDependencies
	CreateDependencies
	GetDependencies
	UpdateDependencies
	DeleteDependencies
	HealthDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	listHandler   *ListHandler
	createHandler *CreateHandler
	getHandler    *GetHandler
	updateHandler *UpdateHandler
	deleteHandler *DeleteHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsProvider, clients ClientCounter) *Server {
	return &Server{
		listHandler:   NewListHandler(deps),
		createHandler: NewCreateHandler(deps),
		getHandler:    NewGetHandler(deps),
		updateHandler: NewUpdateHandler(deps),
		deleteHandler: NewDeleteHandler(deps),
		healthHandler: NewHealthHandler(deps, clients),
		statsHandler:  NewStatsHandler(stats, clients),
	}
}

// Register attaches all HTTP routes to r. Unmatched paths and method
// mismatches get JSON bodies instead of the router's plain-text defaults.
func (s *Server) Register(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	r.Use(RequestIDMiddleware)

	posts := r.PathPrefix("/api").Subrouter()
	posts.HandleFunc("/posts", MetricsMiddleware(RecoverMiddleware(s.listHandler.HandleListPosts), "list_posts")).Methods(http.MethodGet)
	posts.HandleFunc("/posts", MetricsMiddleware(RecoverMiddleware(s.createHandler.HandleCreatePost), "create_post")).Methods(http.MethodPost)
	posts.HandleFunc("/posts/{id:[0-9]+}", MetricsMiddleware(RecoverMiddleware(s.getHandler.HandleGetPost), "get_post")).Methods(http.MethodGet)
	posts.HandleFunc("/posts/{id:[0-9]+}", MetricsMiddleware(RecoverMiddleware(s.updateHandler.HandleUpdatePost), "update_post")).Methods(http.MethodPut)
	posts.HandleFunc("/posts/{id:[0-9]+}", MetricsMiddleware(RecoverMiddleware(s.deleteHandler.HandleDeletePost), "delete_post")).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", MetricsMiddleware(RecoverMiddleware(s.healthHandler.HandleHealth), "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(RecoverMiddleware(s.statsHandler.HandleStats), "stats")).Methods(http.MethodGet)
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}

// Client-facing response strings.
const (
	msgNoData        = "Keine Daten gesendet"
	msgMissingFields = "Fehlende Pflichtfelder"
	msgBadDirection  = "Ungültige Sortierrichtung. Erlaubt: 'asc', 'desc'"
	msgNotFound      = "Post nicht gefunden"
	msgInternal      = "Interner Serverfehler"
)

// errorResponse covers every error body shape the API produces; the
// optional fields are set per error kind.
type errorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Details       string   `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func notFoundResponse(id string) errorResponse {
	return errorResponse{
		Error:   msgNotFound,
		Message: fmt.Sprintf("Kein Post mit ID %s vorhanden.", id),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads the request body as a single JSON object. A missing,
// empty, or malformed body and JSON null all come back as ErrNoData.
func decodeBody(r *http.Request) (map[string]any, error) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if fields == nil {
		return nil, ErrNoData
	}
	return fields, nil
}

// postID extracts the {id} route variable. The route pattern restricts it
// to digits, so parsing fails only past the int64 range, where no stored
// post can match anyway. The returned string is the canonical decimal
// form used in response messages.
func postID(r *http.Request) (int64, string, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, raw, false
	}
	return id, strconv.FormatInt(id, 10), true
}
