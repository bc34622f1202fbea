package repository

import (
	"context"
	"fmt"

	"cineticket/internal/data/entity"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindByTheatreID(ctx context.Context, theatreID uuid.UUID) ([]*entity.Hall, error)
	Update(ctx context.Context, hall *entity.Hall) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	query := `
		INSERT INTO halls (id, theatre_id, name, rows, columns, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.TheatreID,
		hall.Name,
		hall.Rows,
		hall.Columns,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("theatre_id", hall.TheatreID.String()),
			zap.String("name", hall.Name),
		)
		return fmt.Errorf("create hall: %w", err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, theatre_id, name, rows, columns, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.TheatreID,
		&hall.Name,
		&hall.Rows,
		&hall.Columns,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall %s: %w", id, err)
	}

	return &hall, nil
}

func (r *hallRepository) FindByTheatreID(ctx context.Context, theatreID uuid.UUID) ([]*entity.Hall, error) {
	query := `
		SELECT id, theatre_id, name, rows, columns, created_at, updated_at
		FROM halls
		WHERE theatre_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, theatreID)
	if err != nil {
		r.log.Error("Failed to find halls by theatre",
			zap.Error(err),
			zap.String("theatre_id", theatreID.String()),
		)
		return nil, fmt.Errorf("find halls for theatre %s: %w", theatreID, err)
	}
	defer rows.Close()

	halls := []*entity.Hall{}
	for rows.Next() {
		var hall entity.Hall
		if err := rows.Scan(
			&hall.ID,
			&hall.TheatreID,
			&hall.Name,
			&hall.Rows,
			&hall.Columns,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall: %w", err)
		}
		halls = append(halls, &hall)
	}

	return halls, rows.Err()
}

// Update only renames; the seat grid is fixed once generated
func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	query := `UPDATE halls SET name = $1, updated_at = $2 WHERE id = $3`

	if _, err := r.db.Exec(ctx, query, hall.Name, hall.UpdatedAt, hall.ID); err != nil {
		r.log.Error("Failed to update hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return fmt.Errorf("update hall %s: %w", hall.ID, err)
	}

	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete hall",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return fmt.Errorf("delete hall %s: %w", id, err)
	}

	return nil
}
