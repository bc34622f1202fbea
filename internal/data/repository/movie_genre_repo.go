package repository

import (
	"cineticket/internal/data/entity"
	"cineticket/pkg/database"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieGenreRepository interface {
	// ReplaceForMovie drops the movie's links and inserts one per genre id
	ReplaceForMovie(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.MovieGenre, error)
}

type movieGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieGenreRepository(db database.PgxIface, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) ReplaceForMovie(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		r.log.Error("Failed to delete movie_genres by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("failed to delete movie_genres: %w", err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO movie_genres (id, movie_id, genre_id, created_at) VALUES `
	args := []interface{}{}
	now := time.Now()

	for i, genreID := range genreIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)",
			i*4+1, i*4+2, i*4+3, i*4+4)

		args = append(args, uuid.New(), movieID, genreID, now)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch movie_genres",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Int("count", len(genreIDs)),
		)
		return fmt.Errorf("failed to create batch movie_genres: %w", err)
	}

	return nil
}

func (r *movieGenreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.MovieGenre, error) {
	query := `SELECT id, movie_id, genre_id, created_at FROM movie_genres WHERE movie_id = $1`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie_genres by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("failed to find movie_genres: %w", err)
	}
	defer rows.Close()

	var movieGenres []*entity.MovieGenre
	for rows.Next() {
		var mg entity.MovieGenre
		if err := rows.Scan(&mg.ID, &mg.MovieID, &mg.GenreID, &mg.CreatedAt); err != nil {
			r.log.Error("Failed to scan movie_genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie_genre: %w", err)
		}
		movieGenres = append(movieGenres, &mg)
	}

	return movieGenres, rows.Err()
}
