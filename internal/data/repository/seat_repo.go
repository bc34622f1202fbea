package repository

import (
	"context"
	"fmt"

	"cineticket/internal/data/entity"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	// FindByHallID returns seats ordered by row then column
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	// FindByIDs returns only the seats that exist; callers compare lengths
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, hall_id, row_number, column_number, label) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)

		args = append(args,
			seat.ID,
			seat.HallID,
			seat.RowNumber,
			seat.ColumnNumber,
			seat.Label,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("failed to create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, row_number, column_number, label
		FROM seats
		WHERE hall_id = $1
		ORDER BY row_number, column_number
	`
	seats, err := r.findMany(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	return seats, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, hall_id, row_number, column_number, label
		FROM seats
		WHERE id = ANY($1)
		ORDER BY row_number, column_number
	`
	seats, err := r.findMany(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	return seats, nil
}

func (r *seatRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []*entity.Seat{}
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.RowNumber,
			&seat.ColumnNumber,
			&seat.Label,
		); err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}
