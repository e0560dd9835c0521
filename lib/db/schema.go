package db

import "github.com/icco/movies/models"

// MovieRow is the persisted shape of a movie. GenreID and DirectorID point at
// genre and director rows, but nothing checks that those rows exist.
// autoIncrement:false keeps a caller-supplied id of 0 in the INSERT instead of
// letting SQLite pick a rowid.
type MovieRow struct {
	ID          int     `gorm:"primaryKey;autoIncrement:false"`
	Title       string  `gorm:"size:255"`
	Description *string `gorm:"size:255"`
	Trailer     *string `gorm:"size:255"`
	Year        *int
	Rating      *float64
	GenreID     *int `gorm:"index"`
	DirectorID  *int `gorm:"index"`
}

func (MovieRow) TableName() string {
	return "movie"
}

type DirectorRow struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:255"`
}

func (DirectorRow) TableName() string {
	return "director"
}

type GenreRow struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:255"`
}

func (GenreRow) TableName() string {
	return "genre"
}

// MovieRowFrom maps a domain movie onto its row.
func MovieRowFrom(m *models.Movie) MovieRow {
	return MovieRow{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     m.GenreID,
		DirectorID:  m.DirectorID,
	}
}

// ToModel maps a row back onto the domain movie.
func (r MovieRow) ToModel() models.Movie {
	return models.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Trailer:     r.Trailer,
		Year:        r.Year,
		Rating:      r.Rating,
		GenreID:     r.GenreID,
		DirectorID:  r.DirectorID,
	}
}

func (r DirectorRow) ToModel() models.Director {
	return models.Director{ID: r.ID, Name: r.Name}
}

func (r GenreRow) ToModel() models.Genre {
	return models.Genre{ID: r.ID, Name: r.Name}
}

// Tables lists every row type created on startup.
func Tables() []any {
	return []any{&DirectorRow{}, &GenreRow{}, &MovieRow{}}
}
