package usecase

import (
	"context"
	"strings"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"
	"cineticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	Create(ctx context.Context, req *request.HallRequest) (*response.HallDetailResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.HallDetailResponse, error)
	ListByTheatre(ctx context.Context, theatreID uuid.UUID) ([]response.HallResponse, error)
	Rename(ctx context.Context, id uuid.UUID, req *request.HallUpdateRequest) (*response.HallResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

// Create stores the hall together with its rows x columns seat grid.
func (s *hallService) Create(ctx context.Context, req *request.HallRequest) (*response.HallDetailResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	theatreID, err := uuid.Parse(req.TheatreID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid theatre_id")
	}

	theatre, err := s.repo.Theatre.FindByID(ctx, theatreID)
	if err != nil {
		return nil, err
	}
	if theatre == nil {
		return nil, newError(ErrNotFound, "theatre %s not found", theatreID)
	}

	now := time.Now()
	hall := &entity.Hall{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TheatreID:    theatre.ID,
		Name:         strings.TrimSpace(req.Name),
		Rows:         req.Rows,
		Columns:      req.Columns,
	}
	seats := seatGrid(hall)

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Hall.Create(ctx, hall); err != nil {
			return err
		}
		return s.repo.Seat.CreateBatch(ctx, seats)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("theatre_id", theatre.ID.String()),
		zap.Int("seats", len(seats)),
	)

	return hallDetail(hall, seats), nil
}

func (s *hallService) GetByID(ctx context.Context, id uuid.UUID) (*response.HallDetailResponse, error) {
	hall, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, hall.ID)
	if err != nil {
		return nil, err
	}

	return hallDetail(hall, seats), nil
}

func (s *hallService) ListByTheatre(ctx context.Context, theatreID uuid.UUID) ([]response.HallResponse, error) {
	theatre, err := s.repo.Theatre.FindByID(ctx, theatreID)
	if err != nil {
		return nil, err
	}
	if theatre == nil {
		return nil, newError(ErrNotFound, "theatre %s not found", theatreID)
	}

	halls, err := s.repo.Hall.FindByTheatreID(ctx, theatreID)
	if err != nil {
		return nil, err
	}

	result := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		result[i] = response.HallToResponse(hall)
	}
	return result, nil
}

func (s *hallService) Rename(ctx context.Context, id uuid.UUID, req *request.HallUpdateRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hall, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	hall.Name = strings.TrimSpace(req.Name)
	hall.UpdatedAt = time.Now()
	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		return nil, err
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) Delete(ctx context.Context, id uuid.UUID) error {
	hall, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	showTimes, err := s.repo.ShowTime.CountByHallID(ctx, hall.ID)
	if err != nil {
		return err
	}
	if showTimes > 0 {
		return newError(ErrInvalidOperation, "hall %s has %d showtimes", hall.ID, showTimes)
	}

	if err := s.repo.Hall.Delete(ctx, hall.ID); err != nil {
		return err
	}

	s.log.Info("Hall deleted", zap.String("hall_id", hall.ID.String()))
	return nil
}

func (s *hallService) find(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, newError(ErrNotFound, "hall %s not found", id)
	}
	return hall, nil
}

// seatGrid lays out seats row by row: A1, A2, ..., B1, ...
func seatGrid(hall *entity.Hall) []*entity.Seat {
	seats := make([]*entity.Seat, 0, hall.Capacity())
	for row := 1; row <= hall.Rows; row++ {
		for col := 1; col <= hall.Columns; col++ {
			seats = append(seats, &entity.Seat{
				ID:           uuid.New(),
				HallID:       hall.ID,
				RowNumber:    row,
				ColumnNumber: col,
				Label:        utils.SeatLabel(row, col),
			})
		}
	}
	return seats
}

func hallDetail(hall *entity.Hall, seats []*entity.Seat) *response.HallDetailResponse {
	resp := &response.HallDetailResponse{
		HallResponse: response.HallToResponse(hall),
		Seats:        make([]response.SeatResponse, len(seats)),
	}
	for i, seat := range seats {
		resp.Seats[i] = response.SeatToResponse(seat)
	}
	return resp
}
