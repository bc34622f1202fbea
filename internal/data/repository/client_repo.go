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

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, surname, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		client.ID,
		client.UserID,
		client.Name,
		client.Surname,
		client.Phone,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create client",
			zap.Error(err),
			zap.String("user_id", client.UserID.String()),
		)
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	query := `SELECT id, user_id, name, surname, phone, created_at, updated_at FROM clients WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *clientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Client, error) {
	query := `SELECT id, user_id, name, surname, phone, created_at, updated_at FROM clients WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *clientRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.UserID,
		&client.Name,
		&client.Surname,
		&client.Phone,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $1, surname = $2, phone = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.Exec(ctx, query,
		client.Name,
		client.Surname,
		client.Phone,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		r.log.Error("Failed to update client",
			zap.Error(err),
			zap.String("client_id", client.ID.String()),
		)
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}
