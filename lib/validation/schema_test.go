package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/icco/movies/models"
)

func TestParseMovie(t *testing.T) {
	year, rating, genre := 2000, 7.5, 3
	trailer := "https://example.com/t"

	tests := []struct {
		name      string
		body      string
		requireID bool
		want      *models.Movie
		wantErr   string
	}{
		{
			name:      "full create body",
			body:      `{"id": 1, "title": "A", "trailer": "https://example.com/t", "year": 2000, "rating": 7.5, "genre_id": 3, "director_id": null}`,
			requireID: true,
			want:      &models.Movie{ID: 1, Title: "A", Trailer: &trailer, Year: &year, Rating: &rating, GenreID: &genre},
		},
		{
			name:      "integral rating",
			body:      `{"id": 2, "title": "B", "rating": 8}`,
			requireID: true,
			want:      &models.Movie{ID: 2, Title: "B", Rating: ptrTo(8.0)},
		},
		{
			name:      "zero id",
			body:      `{"id": 0, "title": "Zero"}`,
			requireID: true,
			want:      &models.Movie{ID: 0, Title: "Zero"},
		},
		{
			name:      "negative id",
			body:      `{"id": -1, "title": "Below zero"}`,
			requireID: true,
			wantErr:   "greater than or equal to 0",
		},
		{
			name:      "integral float id",
			body:      `{"id": 2.0, "title": "A"}`,
			requireID: true,
			wantErr:   "id: Invalid type. Expected: integer",
		},
		{
			name:    "integral float year",
			body:    `{"title": "A", "year": 1999.0}`,
			wantErr: "year: Invalid type. Expected: integer",
		},
		{
			name: "update ignores body id",
			body: `{"id": 99, "title": "B"}`,
			want: &models.Movie{Title: "B"},
		},
		{
			name:      "create without id",
			body:      `{"title": "A"}`,
			requireID: true,
			wantErr:   "id is required",
		},
		{
			name:    "missing title",
			body:    `{"year": 2000}`,
			wantErr: "title is required",
		},
		{
			name:    "blank title",
			body:    `{"title": "   "}`,
			wantErr: "must not be blank",
		},
		{
			name:    "wrong type",
			body:    `{"title": "A", "year": "2000"}`,
			wantErr: "year",
		},
		{
			name:    "fractional year",
			body:    `{"title": "A", "year": 2000.5}`,
			wantErr: "year",
		},
		{
			name:    "unknown field",
			body:    `{"title": "A", "runtime": 120}`,
			wantErr: "runtime",
		},
		{
			name:    "not an object",
			body:    `[1, 2]`,
			wantErr: "object",
		},
		{
			name:    "invalid json",
			body:    `{"title": `,
			wantErr: "JSON object",
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: "JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMovie([]byte(tt.body), tt.requireID)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseMovie() = %+v, want error containing %q", got, tt.wantErr)
				}
				var verr *Error
				if !errors.As(err, &verr) {
					t.Errorf("ParseMovie() error type = %T, want *Error", err)
				}
				if strings.Contains(err.Error(), "Go struct") {
					t.Errorf("ParseMovie() error = %q, leaks decoder internals", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseMovie() error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMovie() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMovie() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("director_id", "12"); err != nil || id != 12 {
		t.Errorf("ParseID(12) = %d, %v", id, err)
	}
	if _, err := ParseID("director_id", "abc"); err == nil || !strings.Contains(err.Error(), "director_id") {
		t.Errorf("ParseID(abc) error = %v, want error naming director_id", err)
	}
}

func ptrTo[T any](v T) *T {
	return &v
}
