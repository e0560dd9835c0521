package handlers

import (
	"net/http"
	"testing"

	"github.com/icco/movies/lib/testutil"
	"github.com/icco/movies/lib/types"
	"github.com/icco/movies/models"
)

func TestDirectorsAndGenres(t *testing.T) {
	h, gormDB := newTestServer(t)
	testutil.SeedDirector(t, gormDB, 1, "Agnès Varda")
	testutil.SeedDirector(t, gormDB, 2, "Akira Kurosawa")
	testutil.SeedGenre(t, gormDB, 1, "Documentary")

	var directors []models.Director
	w := do(t, h, http.MethodGet, "/directors/", "")
	assertResponse(t, w, http.StatusOK, "")
	decodeJSON(t, w, &directors)
	if len(directors) != 2 || directors[0].Name != "Agnès Varda" {
		t.Errorf("directors = %+v", directors)
	}

	var director models.Director
	decodeJSON(t, do(t, h, http.MethodGet, "/directors/2", ""), &director)
	if director.Name != "Akira Kurosawa" {
		t.Errorf("director 2 = %+v", director)
	}
	assertResponse(t, do(t, h, http.MethodGet, "/directors/3", ""), http.StatusNotFound, "Empty")

	var genres []models.Genre
	decodeJSON(t, do(t, h, http.MethodGet, "/genres", ""), &genres)
	if len(genres) != 1 || genres[0].ID != 1 {
		t.Errorf("genres = %+v", genres)
	}
	assertResponse(t, do(t, h, http.MethodGet, "/genres/1", ""), http.StatusOK, "")
	assertResponse(t, do(t, h, http.MethodGet, "/genres/7", ""), http.StatusNotFound, "Empty")
}

func TestStats(t *testing.T) {
	h, gormDB := newTestServer(t)
	testutil.SeedGenre(t, gormDB, 1, "Drama")
	assertResponse(t, do(t, h, http.MethodPost, "/movies/", `{"id": 1, "title": "A", "rating": 9, "genre_id": 1}`), http.StatusCreated, "Create")
	assertResponse(t, do(t, h, http.MethodPost, "/movies/", `{"id": 2, "title": "B", "rating": 5}`), http.StatusCreated, "Create")

	var stats types.StatsData
	w := do(t, h, http.MethodGet, "/stats", "")
	assertResponse(t, w, http.StatusOK, "")
	decodeJSON(t, w, &stats)
	if stats.TotalMovies != 2 || stats.TotalGenres != 1 || stats.AverageRating != 7 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.GenreDistribution) != 2 {
		t.Errorf("GenreDistribution = %+v, want Drama and the ungenred bucket", stats.GenreDistribution)
	}
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	w := do(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}
