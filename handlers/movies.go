package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/icco/movies/lib/store"
	"github.com/icco/movies/lib/validation"
	"github.com/icco/movies/models"
)

// HandleListMovies serves GET /movies/. director_id takes precedence over
// genre_id. A filtered query with no match answers "Empty" instead of [].
func HandleListMovies(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()

		var (
			movies   []models.Movie
			filtered bool
			err      error
		)
		switch {
		case query.Get("director_id") != "":
			id, perr := validation.ParseID("director_id", query.Get("director_id"))
			if perr != nil {
				validation.WriteError(w, perr, http.StatusBadRequest)
				return
			}
			filtered = true
			movies, err = s.ListMoviesByDirector(ctx, id)
		case query.Get("genre_id") != "":
			id, perr := validation.ParseID("genre_id", query.Get("genre_id"))
			if perr != nil {
				validation.WriteError(w, perr, http.StatusBadRequest)
				return
			}
			filtered = true
			movies, err = s.ListMoviesByGenre(ctx, id)
		default:
			movies, err = s.ListMovies(ctx)
		}
		if err != nil {
			writeInternalError(w, r, "Failed to list movies", err)
			return
		}

		if filtered && len(movies) == 0 {
			writeJSON(w, msgEmpty, http.StatusOK)
			return
		}
		writeJSON(w, movies, http.StatusOK)
	}
}

// HandleCreateMovie serves POST /movies/. The caller picks the id.
func HandleCreateMovie(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := readMovie(w, r, true)
		if !ok {
			return
		}

		if err := s.CreateMovie(r.Context(), m); err != nil {
			if errors.Is(err, store.ErrConflict) {
				writeJSON(w, msgConflict, http.StatusConflict)
				return
			}
			writeInternalError(w, r, "Failed to create movie", err)
			return
		}

		slog.InfoContext(r.Context(), "Created movie", slog.Int("id", m.ID))
		writeJSON(w, msgCreate, http.StatusCreated)
	}
}

// HandleGetMovie serves GET /movies/{id}.
func HandleGetMovie(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, msgEmpty, http.StatusNotFound)
			return
		}

		m, err := s.GetMovie(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, msgEmpty, http.StatusNotFound)
				return
			}
			writeInternalError(w, r, "Failed to get movie", err)
			return
		}

		writeJSON(w, m, http.StatusOK)
	}
}

// HandleUpdateMovie serves PUT /movies/{id}. Every mutable field is replaced;
// optional fields missing from the body are cleared.
func HandleUpdateMovie(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, msgEmpty, http.StatusNotFound)
			return
		}

		// A missing movie answers 404 before the body is looked at.
		if _, err := s.GetMovie(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, msgEmpty, http.StatusNotFound)
				return
			}
			writeInternalError(w, r, "Failed to get movie", err)
			return
		}

		m, ok := readMovie(w, r, false)
		if !ok {
			return
		}
		m.ID = id

		if err := s.UpdateMovie(r.Context(), m); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, msgEmpty, http.StatusNotFound)
				return
			}
			writeInternalError(w, r, "Failed to update movie", err)
			return
		}

		writeJSON(w, msgDone, http.StatusOK)
	}
}

// HandleDeleteMovie serves DELETE /movies/{id}.
func HandleDeleteMovie(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, msgEmpty, http.StatusNotFound)
			return
		}

		if err := s.DeleteMovie(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, msgEmpty, http.StatusNotFound)
				return
			}
			writeInternalError(w, r, "Failed to delete movie", err)
			return
		}

		slog.InfoContext(r.Context(), "Deleted movie", slog.Int("id", id))
		writeJSON(w, msgDone, http.StatusOK)
	}
}

// readMovie reads and validates the request body, answering 400 itself when
// the body is unusable.
func readMovie(w http.ResponseWriter, r *http.Request, requireID bool) (*models.Movie, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		validation.WriteError(w, err, http.StatusBadRequest)
		return nil, false
	}

	m, err := validation.ParseMovie(body, requireID)
	if err != nil {
		validation.WriteError(w, err, http.StatusBadRequest)
		return nil, false
	}
	return m, true
}
