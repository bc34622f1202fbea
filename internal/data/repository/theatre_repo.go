package repository

import (
	"context"
	"fmt"
	"strings"

	"cineticket/internal/data/entity"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TheatreRepository interface {
	Create(ctx context.Context, theatre *entity.Theatre) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theatre, error)
	FindAll(ctx context.Context, limit, offset int, cityFilter *string) ([]*entity.Theatre, error)
	CountAll(ctx context.Context, cityFilter *string) (int64, error)
	Update(ctx context.Context, theatre *entity.Theatre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type theatreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheatreRepository(db database.PgxIface, log *zap.Logger) TheatreRepository {
	return &theatreRepository{
		db:  db,
		log: log.With(zap.String("repository", "theatre")),
	}
}

func (r *theatreRepository) Create(ctx context.Context, theatre *entity.Theatre) error {
	query := `
		INSERT INTO theatres (id, name, address, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		theatre.ID,
		theatre.Name,
		theatre.Address,
		theatre.City,
		theatre.CreatedAt,
		theatre.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create theatre",
			zap.Error(err),
			zap.String("name", theatre.Name),
			zap.String("city", theatre.City),
		)
		return fmt.Errorf("create theatre %s: %w", theatre.Name, err)
	}

	return nil
}

func (r *theatreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theatre, error) {
	query := `
		SELECT id, name, address, city, created_at, updated_at, deleted_at
		FROM theatres
		WHERE id = $1 AND deleted_at IS NULL
	`

	var theatre entity.Theatre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theatre.ID,
		&theatre.Name,
		&theatre.Address,
		&theatre.City,
		&theatre.CreatedAt,
		&theatre.UpdatedAt,
		&theatre.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theatre by ID",
			zap.Error(err),
			zap.String("theatre_id", id.String()),
		)
		return nil, fmt.Errorf("find theatre %s: %w", id, err)
	}

	return &theatre, nil
}

func (r *theatreRepository) FindAll(ctx context.Context, limit, offset int, cityFilter *string) ([]*entity.Theatre, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, address, city, created_at, updated_at, deleted_at
		FROM theatres
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if cityFilter != nil && *cityFilter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", argCount))
		args = append(args, *cityFilter)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find theatres",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city", cityFilter),
		)
		return nil, fmt.Errorf("find theatres: %w", err)
	}
	defer rows.Close()

	theatres := []*entity.Theatre{}
	for rows.Next() {
		var theatre entity.Theatre
		if err := rows.Scan(
			&theatre.ID,
			&theatre.Name,
			&theatre.Address,
			&theatre.City,
			&theatre.CreatedAt,
			&theatre.UpdatedAt,
			&theatre.DeletedAt,
		); err != nil {
			r.log.Error("Failed to scan theatre row", zap.Error(err))
			return nil, fmt.Errorf("scan theatre: %w", err)
		}
		theatres = append(theatres, &theatre)
	}

	return theatres, rows.Err()
}

func (r *theatreRepository) CountAll(ctx context.Context, cityFilter *string) (int64, error) {
	query := `SELECT COUNT(*) FROM theatres WHERE deleted_at IS NULL`
	args := []interface{}{}

	if cityFilter != nil && *cityFilter != "" {
		query += ` AND LOWER(city) = LOWER($1)`
		args = append(args, *cityFilter)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count theatres", zap.Error(err))
		return 0, fmt.Errorf("count theatres: %w", err)
	}

	return count, nil
}

func (r *theatreRepository) Update(ctx context.Context, theatre *entity.Theatre) error {
	query := `
		UPDATE theatres
		SET name = $1, address = $2, city = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query,
		theatre.Name,
		theatre.Address,
		theatre.City,
		theatre.UpdatedAt,
		theatre.ID,
	)
	if err != nil {
		r.log.Error("Failed to update theatre",
			zap.Error(err),
			zap.String("theatre_id", theatre.ID.String()),
		)
		return fmt.Errorf("update theatre %s: %w", theatre.ID, err)
	}

	return nil
}

// Delete is a soft delete
func (r *theatreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE theatres SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete theatre",
			zap.Error(err),
			zap.String("theatre_id", id.String()),
		)
		return fmt.Errorf("delete theatre %s: %w", id, err)
	}

	return nil
}
