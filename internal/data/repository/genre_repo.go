package repository

import (
	"cineticket/internal/data/entity"
	"cineticket/pkg/database"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error)
	FindByName(ctx context.Context, name string) (*entity.Genre, error)
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error)
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Translations are replaced wholesale
	ReplaceTranslations(ctx context.Context, genreID uuid.UUID, translations []entity.GenreTranslation) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.CreatedAt, genre.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create genre", zap.Error(err), zap.String("name", genre.Name))
		return fmt.Errorf("failed to create genre: %w", err)
	}

	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID", zap.Error(err), zap.String("genre_id", id.String()))
		return nil, fmt.Errorf("failed to find genre: %w", err)
	}

	if err := r.loadTranslations(ctx, []*entity.Genre{&genre}); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE LOWER(name) = LOWER($1)`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, name).Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by name", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to find genre: %w", err)
	}

	return &genre, nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	if len(ids) == 0 {
		return []*entity.Genre{}, nil
	}
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = ANY($1) ORDER BY name`
	return r.findMany(ctx, query, ids)
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres ORDER BY name`
	return r.findMany(ctx, query)
}

func (r *genreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.created_at, g.updated_at
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`
	return r.findMany(ctx, query, movieID)
}

func (r *genreRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find genres", zap.Error(err))
		return nil, fmt.Errorf("failed to find genres: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, &genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	if err := r.loadTranslations(ctx, genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) loadTranslations(ctx context.Context, genres []*entity.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Genre, len(genres))
	ids := make([]uuid.UUID, 0, len(genres))
	for _, g := range genres {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	query := `
		SELECT id, genre_id, language_code, name
		FROM genre_translations
		WHERE genre_id = ANY($1)
		ORDER BY language_code
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load genre translations", zap.Error(err))
		return fmt.Errorf("failed to load genre translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.GenreTranslation
		if err := rows.Scan(&t.ID, &t.GenreID, &t.LanguageCode, &t.Name); err != nil {
			return fmt.Errorf("failed to scan genre translation: %w", err)
		}
		if g, ok := byID[t.GenreID]; ok {
			g.Translations = append(g.Translations, t)
		}
	}
	return rows.Err()
}

func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `UPDATE genres SET name = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, genre.Name, genre.UpdatedAt, genre.ID)
	if err != nil {
		r.log.Error("Failed to update genre", zap.Error(err), zap.String("genre_id", genre.ID.String()))
		return fmt.Errorf("failed to update genre: %w", err)
	}

	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM genres WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete genre", zap.Error(err), zap.String("genre_id", id.String()))
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	return nil
}

func (r *genreRepository) ReplaceTranslations(ctx context.Context, genreID uuid.UUID, translations []entity.GenreTranslation) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM genre_translations WHERE genre_id = $1`, genreID); err != nil {
		r.log.Error("Failed to clear genre translations", zap.Error(err), zap.String("genre_id", genreID.String()))
		return fmt.Errorf("failed to clear genre translations: %w", err)
	}
	if len(translations) == 0 {
		return nil
	}

	query := `INSERT INTO genre_translations (id, genre_id, language_code, name) VALUES `
	args := []interface{}{}
	for i, t := range translations {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, t.ID, genreID, t.LanguageCode, t.Name)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to insert genre translations",
			zap.Error(err),
			zap.String("genre_id", genreID.String()),
			zap.Int("count", len(translations)),
		)
		return fmt.Errorf("failed to insert genre translations: %w", err)
	}

	return nil
}
