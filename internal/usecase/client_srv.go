package usecase

import (
	"context"
	"strings"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.ClientResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ClientResponse, error)
}

type clientService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClientService(repo *repository.Repository, log *zap.Logger) ClientService {
	return &clientService{
		repo: repo,
		log:  log.With(zap.String("service", "client")),
	}
}

// clientByUser resolves the client profile of an authenticated user
func clientByUser(ctx context.Context, repo *repository.Repository, userID uuid.UUID) (*entity.Client, error) {
	client, err := repo.Client.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, newError(ErrNotFound, "client profile not found")
	}
	return client, nil
}

func (s *clientService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ClientResponse, error) {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, client), nil
}

func (s *clientService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ClientResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		client.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	client.UpdatedAt = time.Now()

	if err := s.repo.Client.Update(ctx, client); err != nil {
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("client_id", client.ID.String()))
	return s.toResponse(ctx, client), nil
}

func (s *clientService) toResponse(ctx context.Context, client *entity.Client) *response.ClientResponse {
	var email string
	if user, err := s.repo.User.FindByID(ctx, client.UserID); err == nil && user != nil {
		email = user.Email
	}
	resp := response.ClientToResponse(client, email)
	return &resp
}
