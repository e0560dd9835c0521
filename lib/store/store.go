// Package store is the data-access layer of the catalogue. Every exported
// method runs a single query (or a check followed by a write) against the
// handle passed to New and commits immediately.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/icco/movies/lib/db"
	"github.com/icco/movies/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an operation targets an id with no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a movie is created with an id already in use.
	ErrConflict = errors.New("id already exists")
)

type Store struct {
	db *gorm.DB
}

func New(gormDB *gorm.DB) *Store {
	return &Store{db: gormDB}
}

// Ping checks that the database still answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.findMovies(s.db.WithContext(ctx))
}

func (s *Store) ListMoviesByDirector(ctx context.Context, directorID int) ([]models.Movie, error) {
	return s.findMovies(s.db.WithContext(ctx).Where("director_id = ?", directorID))
}

func (s *Store) ListMoviesByGenre(ctx context.Context, genreID int) ([]models.Movie, error) {
	return s.findMovies(s.db.WithContext(ctx).Where("genre_id = ?", genreID))
}

func (s *Store) findMovies(q *gorm.DB) ([]models.Movie, error) {
	var rows []db.MovieRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, row.ToModel())
	}
	return movies, nil
}

func (s *Store) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	var row db.MovieRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	m := row.ToModel()
	return &m, nil
}

// CreateMovie inserts m under its own id. The primary key backs up the
// existence check when two requests race on the same id.
func (s *Store) CreateMovie(ctx context.Context, m *models.Movie) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.MovieRow{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check movie %d: %w", m.ID, err)
	}
	if count > 0 {
		return ErrConflict
	}

	row := db.MovieRowFrom(m)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create movie %d: %w", m.ID, err)
	}

	*m = row.ToModel()
	return nil
}

// UpdateMovie overwrites every mutable column of the movie with m.ID. Nil
// fields on m clear the column.
func (s *Store) UpdateMovie(ctx context.Context, m *models.Movie) error {
	row := db.MovieRowFrom(m)
	result := s.db.WithContext(ctx).Model(&db.MovieRow{}).Where("id = ?", m.ID).
		Select("title", "description", "trailer", "year", "rating", "genre_id", "director_id").
		Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to update movie %d: %w", m.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMovie(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&db.MovieRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListDirectors(ctx context.Context) ([]models.Director, error) {
	var rows []db.DirectorRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}

	directors := make([]models.Director, 0, len(rows))
	for _, row := range rows {
		directors = append(directors, row.ToModel())
	}
	return directors, nil
}

func (s *Store) GetDirector(ctx context.Context, id int) (*models.Director, error) {
	var row db.DirectorRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get director %d: %w", id, err)
	}

	d := row.ToModel()
	return &d, nil
}

func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var rows []db.GenreRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	genres := make([]models.Genre, 0, len(rows))
	for _, row := range rows {
		genres = append(genres, row.ToModel())
	}
	return genres, nil
}

func (s *Store) GetGenre(ctx context.Context, id int) (*models.Genre, error) {
	var row db.GenreRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get genre %d: %w", id, err)
	}

	g := row.ToModel()
	return &g, nil
}
