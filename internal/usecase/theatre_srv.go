package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TheatreService interface {
	List(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.TheatreResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.TheatreDetailResponse, error)

	Create(ctx context.Context, req *request.TheatreRequest) (*response.TheatreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.TheatreUpdateRequest) (*response.TheatreResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type theatreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheatreService(repo *repository.Repository, log *zap.Logger) TheatreService {
	return &theatreService{
		repo: repo,
		log:  log.With(zap.String("service", "theatre")),
	}
}

func (s *theatreService) List(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.TheatreResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	theatres, err := s.repo.Theatre.FindAll(ctx, limit, offset, cityFilter)
	if err != nil {
		s.log.Error("Failed to get theatres from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("get theatres: %w", err)
	}

	total, err := s.repo.Theatre.CountAll(ctx, cityFilter)
	if err != nil {
		s.log.Error("Failed to count theatres",
			zap.Error(err),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("count theatres: %w", err)
	}

	theatreResponses := make([]response.TheatreResponse, len(theatres))
	for i, theatre := range theatres {
		theatreResponses[i] = response.TheatreToResponse(theatre)
	}

	s.log.Debug("Theatres retrieved",
		zap.Int("count", len(theatres)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(theatreResponses, req.Page, limit, total), nil
}

func (s *theatreService) GetByID(ctx context.Context, id uuid.UUID) (*response.TheatreDetailResponse, error) {
	theatre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	halls, err := s.repo.Hall.FindByTheatreID(ctx, theatre.ID)
	if err != nil {
		return nil, fmt.Errorf("get halls for theatre %s: %w", id, err)
	}

	hallResponses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		hallResponses[i] = response.HallToResponse(hall)
	}

	return &response.TheatreDetailResponse{
		TheatreResponse: response.TheatreToResponse(theatre),
		Halls:           hallResponses,
	}, nil
}

func (s *theatreService) Create(ctx context.Context, req *request.TheatreRequest) (*response.TheatreResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	theatre := &entity.Theatre{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
	}

	if err := s.repo.Theatre.Create(ctx, theatre); err != nil {
		return nil, err
	}

	s.log.Info("Theatre created",
		zap.String("theatre_id", theatre.ID.String()),
		zap.String("name", theatre.Name),
		zap.String("city", theatre.City),
	)

	resp := response.TheatreToResponse(theatre)
	return &resp, nil
}

func (s *theatreService) Update(ctx context.Context, id uuid.UUID, req *request.TheatreUpdateRequest) (*response.TheatreResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	theatre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Name != nil && *req.Name != theatre.Name {
		theatre.Name = strings.TrimSpace(*req.Name)
		updated = true
	}

	if req.Address != nil && *req.Address != theatre.Address {
		theatre.Address = strings.TrimSpace(*req.Address)
		updated = true
	}

	if req.City != nil && *req.City != theatre.City {
		theatre.City = strings.TrimSpace(*req.City)
		updated = true
	}

	if updated {
		theatre.UpdatedAt = time.Now()
		if err := s.repo.Theatre.Update(ctx, theatre); err != nil {
			return nil, err
		}
	}

	s.log.Info("Theatre updated",
		zap.String("theatre_id", id.String()),
		zap.Bool("was_updated", updated),
	)

	resp := response.TheatreToResponse(theatre)
	return &resp, nil
}

func (s *theatreService) Delete(ctx context.Context, id uuid.UUID) error {
	theatre, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Theatre.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Theatre deleted",
		zap.String("theatre_id", id.String()),
		zap.String("name", theatre.Name),
	)
	return nil
}

func (s *theatreService) find(ctx context.Context, id uuid.UUID) (*entity.Theatre, error) {
	theatre, err := s.repo.Theatre.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theatre == nil {
		return nil, newError(ErrNotFound, "theatre %s not found", id)
	}
	return theatre, nil
}
