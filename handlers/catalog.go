package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/icco/movies/lib/store"
)

// HandleListDirectors serves GET /directors/.
func HandleListDirectors(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		directors, err := s.ListDirectors(r.Context())
		if err != nil {
			writeInternalError(w, r, "Failed to list directors", err)
			return
		}
		writeJSON(w, directors, http.StatusOK)
	}
}

// HandleGetDirector serves GET /directors/{id}.
func HandleGetDirector(s *store.Store) http.HandlerFunc {
	return handleGetByID("director", s.GetDirector)
}

// HandleListGenres serves GET /genres/.
func HandleListGenres(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := s.ListGenres(r.Context())
		if err != nil {
			writeInternalError(w, r, "Failed to list genres", err)
			return
		}
		writeJSON(w, genres, http.StatusOK)
	}
}

// HandleGetGenre serves GET /genres/{id}.
func HandleGetGenre(s *store.Store) http.HandlerFunc {
	return handleGetByID("genre", s.GetGenre)
}

// HandleStats serves GET /stats.
func HandleStats(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats(r.Context())
		if err != nil {
			writeInternalError(w, r, "Failed to get stats", err)
			return
		}
		writeJSON(w, stats, http.StatusOK)
	}
}

func handleGetByID[T any](kind string, get func(context.Context, int) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSON(w, msgEmpty, http.StatusNotFound)
			return
		}

		v, err := get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, msgEmpty, http.StatusNotFound)
				return
			}
			writeInternalError(w, r, "Failed to get "+kind, err)
			return
		}
		writeJSON(w, v, http.StatusOK)
	}
}
