package repository

import (
	"cineticket/internal/data/entity"
	"cineticket/pkg/database"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, offset, limit int, genreID *uuid.UUID) ([]*entity.Movie, error)
	CountAll(ctx context.Context, genreID *uuid.UUID) (int64, error)

	// Translations are replaced wholesale
	ReplaceTranslations(ctx context.Context, movieID uuid.UUID, translations []entity.MovieTranslation) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `m.id, m.title, m.description, m.duration_minutes, m.release_date, m.rating,
	m.poster_object, m.backdrop_object, m.created_at, m.updated_at, m.deleted_at`

func scanMovie(row pgx.Row, movie *entity.Movie) error {
	return row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMinutes,
		&movie.ReleaseDate,
		&movie.Rating,
		&movie.PosterObject,
		&movie.BackdropObject,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, duration_minutes, release_date, rating,
		                    poster_object, backdrop_object, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.ReleaseDate,
		movie.Rating,
		movie.PosterObject,
		movie.BackdropObject,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies m WHERE m.id = $1 AND m.deleted_at IS NULL`

	var movie entity.Movie
	err := scanMovie(r.db.QueryRow(ctx, query, id), &movie)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	if err := r.loadTranslations(ctx, []*entity.Movie{&movie}); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error) {
	if len(ids) == 0 {
		return []*entity.Movie{}, nil
	}
	query := `SELECT ` + movieColumns + ` FROM movies m WHERE m.id = ANY($1) AND m.deleted_at IS NULL`
	return r.findMany(ctx, query, ids)
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int, genreID *uuid.UUID) ([]*entity.Movie, error) {
	// Build query with optional genre filter
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies m WHERE m.deleted_at IS NULL`)

	args := []interface{}{}
	argCount := 1

	if genreID != nil {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = $%d)", argCount))
		args = append(args, *genreID)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.release_date DESC, m.title LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	return r.findMany(ctx, queryBuilder.String(), args...)
}

func (r *movieRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		var movie entity.Movie
		if err := scanMovie(rows, &movie); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	if err := r.loadTranslations(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, genreID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM movies m WHERE m.deleted_at IS NULL`
	args := []interface{}{}

	if genreID != nil {
		query += ` AND EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = $1)`
		args = append(args, *genreID)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) loadTranslations(ctx context.Context, movies []*entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Movie, len(movies))
	ids := make([]uuid.UUID, 0, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	query := `
		SELECT id, movie_id, language_code, title, description
		FROM movie_translations
		WHERE movie_id = ANY($1)
		ORDER BY language_code
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load movie translations", zap.Error(err))
		return fmt.Errorf("failed to load movie translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.MovieTranslation
		if err := rows.Scan(&t.ID, &t.MovieID, &t.LanguageCode, &t.Title, &t.Description); err != nil {
			return fmt.Errorf("failed to scan movie translation: %w", err)
		}
		if m, ok := byID[t.MovieID]; ok {
			m.Translations = append(m.Translations, t)
		}
	}
	return rows.Err()
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, duration_minutes = $3, release_date = $4, rating = $5,
		    poster_object = $6, backdrop_object = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.ReleaseDate,
		movie.Rating,
		movie.PosterObject,
		movie.BackdropObject,
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// Delete is a soft delete
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	return nil
}

func (r *movieRepository) ReplaceTranslations(ctx context.Context, movieID uuid.UUID, translations []entity.MovieTranslation) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM movie_translations WHERE movie_id = $1`, movieID); err != nil {
		r.log.Error("Failed to clear movie translations", zap.Error(err), zap.String("movie_id", movieID.String()))
		return fmt.Errorf("failed to clear movie translations: %w", err)
	}
	if len(translations) == 0 {
		return nil
	}

	query := `INSERT INTO movie_translations (id, movie_id, language_code, title, description) VALUES `
	args := []interface{}{}
	for i, t := range translations {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)
		args = append(args, t.ID, movieID, t.LanguageCode, t.Title, t.Description)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to insert movie translations",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Int("count", len(translations)),
		)
		return fmt.Errorf("failed to insert movie translations: %w", err)
	}

	return nil
}
