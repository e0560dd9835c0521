package store

import (
	"context"
	"fmt"

	"github.com/icco/movies/lib/db"
	"github.com/icco/movies/lib/types"
)

// Stats summarises the catalogue.
func (s *Store) Stats(ctx context.Context) (*types.StatsData, error) {
	var stats types.StatsData
	q := s.db.WithContext(ctx)

	if err := q.Model(&db.MovieRow{}).Count(&stats.TotalMovies).Error; err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	if err := q.Model(&db.DirectorRow{}).Count(&stats.TotalDirectors).Error; err != nil {
		return nil, fmt.Errorf("failed to count directors: %w", err)
	}
	if err := q.Model(&db.GenreRow{}).Count(&stats.TotalGenres).Error; err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}

	var agg struct {
		AverageRating *float64
		FirstYear     *int
		LastYear      *int
	}
	if err := q.Model(&db.MovieRow{}).
		Select("AVG(rating) AS average_rating, MIN(year) AS first_year, MAX(year) AS last_year").
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate movies: %w", err)
	}
	if agg.AverageRating != nil {
		stats.AverageRating = *agg.AverageRating
	}
	stats.FirstYear = agg.FirstYear
	stats.LastYear = agg.LastYear

	stats.GenreDistribution = []types.GenreCount{}
	if err := q.Model(&db.MovieRow{}).
		Select("COALESCE(genre.name, '') AS genre, COUNT(*) AS count").
		Joins("LEFT JOIN genre ON genre.id = movie.genre_id").
		Group("COALESCE(genre.name, '')").
		Order("count DESC, genre").
		Scan(&stats.GenreDistribution).Error; err != nil {
		return nil, fmt.Errorf("failed to get genre distribution: %w", err)
	}

	return &stats, nil
}
