package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowTimeFilter narrows listings; nil fields are ignored. From is inclusive,
// To exclusive, both compared against start_time.
type ShowTimeFilter struct {
	MovieID *uuid.UUID
	HallID  *uuid.UUID
	From    *time.Time
	To      *time.Time
}

type ShowTimeRepository interface {
	Create(ctx context.Context, showTime *entity.ShowTime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error)
	FindAll(ctx context.Context, filter ShowTimeFilter, limit, offset int) ([]*entity.ShowTime, error)
	CountAll(ctx context.Context, filter ShowTimeFilter) (int64, error)
	CountByHallID(ctx context.Context, hallID uuid.UUID) (int64, error)
	Update(ctx context.Context, showTime *entity.ShowTime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showTimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowTimeRepository(db database.PgxIface, log *zap.Logger) ShowTimeRepository {
	return &showTimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_time")),
	}
}

const showTimeColumns = `id, movie_id, hall_id, start_time, end_time, base_price, created_at, updated_at`

func scanShowTime(row pgx.Row, st *entity.ShowTime) error {
	return row.Scan(
		&st.ID,
		&st.MovieID,
		&st.HallID,
		&st.StartTime,
		&st.EndTime,
		&st.BasePrice,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
}

func (r *showTimeRepository) Create(ctx context.Context, showTime *entity.ShowTime) error {
	query := `
		INSERT INTO show_times (id, movie_id, hall_id, start_time, end_time, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showTime.ID,
		showTime.MovieID,
		showTime.HallID,
		showTime.StartTime,
		showTime.EndTime,
		showTime.BasePrice,
		showTime.CreatedAt,
		showTime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create show time",
			zap.Error(err),
			zap.String("movie_id", showTime.MovieID.String()),
			zap.String("hall_id", showTime.HallID.String()),
		)
		return fmt.Errorf("create show time: %w", err)
	}

	return nil
}

func (r *showTimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	query := `SELECT ` + showTimeColumns + ` FROM show_times WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *showTimeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	query := `SELECT ` + showTimeColumns + ` FROM show_times WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *showTimeRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.ShowTime, error) {
	var showTime entity.ShowTime
	err := scanShowTime(r.db.QueryRow(ctx, query, id), &showTime)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show time by ID",
			zap.Error(err),
			zap.String("show_time_id", id.String()),
		)
		return nil, fmt.Errorf("find show time %s: %w", id, err)
	}

	return &showTime, nil
}

func (f ShowTimeFilter) where() (string, []interface{}) {
	var conditions []string
	args := []interface{}{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.MovieID != nil {
		add("movie_id = $%d", *f.MovieID)
	}
	if f.HallID != nil {
		add("hall_id = $%d", *f.HallID)
	}
	if f.From != nil {
		add("start_time >= $%d", *f.From)
	}
	if f.To != nil {
		add("start_time < $%d", *f.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *showTimeRepository) FindAll(ctx context.Context, filter ShowTimeFilter, limit, offset int) ([]*entity.ShowTime, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT %s FROM show_times%s ORDER BY start_time LIMIT $%d OFFSET $%d`,
		showTimeColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find show times", zap.Error(err))
		return nil, fmt.Errorf("find show times: %w", err)
	}
	defer rows.Close()

	showTimes := []*entity.ShowTime{}
	for rows.Next() {
		var showTime entity.ShowTime
		if err := scanShowTime(rows, &showTime); err != nil {
			r.log.Error("Failed to scan show time row", zap.Error(err))
			return nil, fmt.Errorf("scan show time row: %w", err)
		}
		showTimes = append(showTimes, &showTime)
	}

	return showTimes, rows.Err()
}

func (r *showTimeRepository) CountAll(ctx context.Context, filter ShowTimeFilter) (int64, error) {
	where, args := filter.where()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM show_times`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count show times", zap.Error(err))
		return 0, fmt.Errorf("count show times: %w", err)
	}

	return count, nil
}

func (r *showTimeRepository) CountByHallID(ctx context.Context, hallID uuid.UUID) (int64, error) {
	return r.CountAll(ctx, ShowTimeFilter{HallID: &hallID})
}

func (r *showTimeRepository) Update(ctx context.Context, showTime *entity.ShowTime) error {
	query := `
		UPDATE show_times
		SET movie_id = $2, hall_id = $3, start_time = $4, end_time = $5, base_price = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		showTime.ID,
		showTime.MovieID,
		showTime.HallID,
		showTime.StartTime,
		showTime.EndTime,
		showTime.BasePrice,
		showTime.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update show time",
			zap.Error(err),
			zap.String("show_time_id", showTime.ID.String()),
		)
		return fmt.Errorf("update show time %s: %w", showTime.ID, err)
	}

	return nil
}

func (r *showTimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM show_times WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete show time",
			zap.Error(err),
			zap.String("show_time_id", id.String()),
		)
		return fmt.Errorf("delete show time %s: %w", id, err)
	}

	return nil
}
