package types

// StatsData represents statistics about the movie catalogue.
type StatsData struct {
	TotalMovies    int64   `json:"total_movies"`
	TotalDirectors int64   `json:"total_directors"`
	TotalGenres    int64   `json:"total_genres"`
	AverageRating  float64 `json:"average_rating"`
	FirstYear      *int    `json:"first_year"`
	LastYear       *int    `json:"last_year"`

	// GenreDistribution counts movies per genre name. Movies without a
	// genre, or pointing at a missing genre row, are counted under "".
	GenreDistribution []GenreCount `json:"genre_distribution"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}
