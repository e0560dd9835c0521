package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/icco/movies/lib/health"
	"github.com/icco/movies/lib/store"
	"github.com/icco/movies/lib/validation"
)

// Literal bodies returned by the movie resources. Clients match on them, so
// they are encoded as JSON strings exactly as written.
const (
	msgEmpty    = "Empty"
	msgCreate   = "Create"
	msgConflict = "Conflict id"
	msgDone     = "Done"
)

var errInternal = errors.New("internal server error")

// maxBodyBytes caps request bodies read by the write handlers.
const maxBodyBytes = 1 << 20

// NewRouter wires every resource onto a chi router backed by s.
func NewRouter(s *store.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", health.Check(s, 5*time.Second))
	r.Get("/stats", HandleStats(s))

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", HandleListMovies(s))
		r.Post("/", HandleCreateMovie(s))
		r.Get("/{id:[0-9]+}", HandleGetMovie(s))
		r.Put("/{id:[0-9]+}", HandleUpdateMovie(s))
		r.Delete("/{id:[0-9]+}", HandleDeleteMovie(s))
	})

	r.Route("/directors", func(r chi.Router) {
		r.Get("/", HandleListDirectors(s))
		r.Get("/{id:[0-9]+}", HandleGetDirector(s))
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", HandleListGenres(s))
		r.Get("/{id:[0-9]+}", HandleGetGenre(s))
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}

// writeInternalError logs err and answers 500 without leaking its text.
func writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg,
		slog.Any("error", err),
		slog.String("request_id", middleware.GetReqID(r.Context())))
	validation.WriteError(w, errInternal, http.StatusInternalServerError)
}

// pathID returns the numeric {id} route parameter. The route pattern only
// admits digits, so the only failure is an out-of-range value.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}
