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

type WatchlistRepository interface {
	Create(ctx context.Context, item *entity.WatchlistItem) error
	Find(ctx context.Context, clientID, movieID uuid.UUID) (*entity.WatchlistItem, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.WatchlistItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type watchlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchlistRepository(db database.PgxIface, log *zap.Logger) WatchlistRepository {
	return &watchlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "watchlist")),
	}
}

func (r *watchlistRepository) Create(ctx context.Context, item *entity.WatchlistItem) error {
	query := `INSERT INTO watchlist_items (id, client_id, movie_id, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, item.ID, item.ClientID, item.MovieID, item.CreatedAt); err != nil {
		r.log.Error("Failed to create watchlist item",
			zap.Error(err),
			zap.String("client_id", item.ClientID.String()),
			zap.String("movie_id", item.MovieID.String()),
		)
		return fmt.Errorf("create watchlist item: %w", err)
	}

	return nil
}

func (r *watchlistRepository) Find(ctx context.Context, clientID, movieID uuid.UUID) (*entity.WatchlistItem, error) {
	query := `
		SELECT id, client_id, movie_id, created_at
		FROM watchlist_items
		WHERE client_id = $1 AND movie_id = $2
	`

	var item entity.WatchlistItem
	err := r.db.QueryRow(ctx, query, clientID, movieID).Scan(&item.ID, &item.ClientID, &item.MovieID, &item.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watchlist item",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}

	return &item, nil
}

func (r *watchlistRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.WatchlistItem, error) {
	query := `
		SELECT id, client_id, movie_id, created_at
		FROM watchlist_items
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		r.log.Error("Failed to find watchlist", zap.Error(err), zap.String("client_id", clientID.String()))
		return nil, fmt.Errorf("find watchlist: %w", err)
	}
	defer rows.Close()

	items := []*entity.WatchlistItem{}
	for rows.Next() {
		var item entity.WatchlistItem
		if err := rows.Scan(&item.ID, &item.ClientID, &item.MovieID, &item.CreatedAt); err != nil {
			r.log.Error("Failed to scan watchlist row", zap.Error(err))
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *watchlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM watchlist_items WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete watchlist item", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	return nil
}
