package models

// Movie is a catalogue entry. Nullable columns are pointers so that an unset
// value is encoded as JSON null.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"` // URL
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int     `json:"genre_id"`
	DirectorID  *int     `json:"director_id"`
}

type Director struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
