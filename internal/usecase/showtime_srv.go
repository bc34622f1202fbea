package usecase

import (
	"context"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowTimeService interface {
	Create(ctx context.Context, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.ShowTimeUpdateRequest) (*response.ShowTimeResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ShowTimeResponse, error)
	List(ctx context.Context, query *request.ShowTimeListQuery) (*response.PaginatedResponse[response.ShowTimeResponse], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type showTimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowTimeService(repo *repository.Repository, log *zap.Logger) ShowTimeService {
	return &showTimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showTimeService) Create(ctx context.Context, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid movie_id")
	}
	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid hall_id")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "movie %s not found", movieID)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, newError(ErrNotFound, "hall %s not found", hallID)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, newError(ErrValidation, "invalid start_time")
	}
	end := start.Add(time.Duration(movie.DurationMinutes) * time.Minute)
	if req.EndTime != nil {
		if end, err = time.Parse(time.RFC3339, *req.EndTime); err != nil {
			return nil, newError(ErrValidation, "invalid end_time")
		}
	}
	if err := checkShowTimeWindow(start, end, req.BasePrice); err != nil {
		return nil, err
	}

	now := time.Now()
	showTime := &entity.ShowTime{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:      movie.ID,
		HallID:       hall.ID,
		StartTime:    start,
		EndTime:      end,
		BasePrice:    req.BasePrice,
	}

	if err := s.repo.ShowTime.Create(ctx, showTime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("show_time_id", showTime.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.String("hall_id", hall.ID.String()),
		zap.Time("start_time", start),
	)

	resp := showTimeResponse(showTime, movie, hall)
	return &resp, nil
}

// Update is refused once tickets exist for the showtime.
func (s *showTimeService) Update(ctx context.Context, id uuid.UUID, req *request.ShowTimeUpdateRequest) (*response.ShowTimeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	showTime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnsold(ctx, showTime.ID); err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, newError(ErrValidation, "invalid start_time")
		}
		// keep the running time when only the start moves
		if req.EndTime == nil {
			showTime.EndTime = start.Add(showTime.EndTime.Sub(showTime.StartTime))
		}
		showTime.StartTime = start
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, newError(ErrValidation, "invalid end_time")
		}
		showTime.EndTime = end
	}
	if req.BasePrice != nil {
		showTime.BasePrice = *req.BasePrice
	}
	if err := checkShowTimeWindow(showTime.StartTime, showTime.EndTime, showTime.BasePrice); err != nil {
		return nil, err
	}

	showTime.UpdatedAt = time.Now()
	if err := s.repo.ShowTime.Update(ctx, showTime); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, showTime)
}

func (s *showTimeService) GetByID(ctx context.Context, id uuid.UUID) (*response.ShowTimeResponse, error) {
	showTime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, showTime)
}

func (s *showTimeService) List(ctx context.Context, query *request.ShowTimeListQuery) (*response.PaginatedResponse[response.ShowTimeResponse], error) {
	if err := validate(query); err != nil {
		return nil, err
	}

	var filter repository.ShowTimeFilter
	if query.MovieID != nil {
		movieID, err := uuid.Parse(*query.MovieID)
		if err != nil {
			return nil, newError(ErrValidation, "invalid movie_id")
		}
		filter.MovieID = &movieID
	}
	if query.Date != nil {
		day, err := time.Parse("2006-01-02", *query.Date)
		if err != nil {
			return nil, newError(ErrValidation, "invalid date")
		}
		next := day.AddDate(0, 0, 1)
		filter.From, filter.To = &day, &next
	}

	limit, offset := query.Limit(), query.Offset()
	showTimes, err := s.repo.ShowTime.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.ShowTime.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.ShowTimeResponse, 0, len(showTimes))
	for _, st := range showTimes {
		resp, err := s.toResponse(ctx, st)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, query.Page, limit, total), nil
}

func (s *showTimeService) Delete(ctx context.Context, id uuid.UUID) error {
	showTime, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUnsold(ctx, showTime.ID); err != nil {
		return err
	}

	if err := s.repo.ShowTime.Delete(ctx, showTime.ID); err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.String("show_time_id", showTime.ID.String()))
	return nil
}

func (s *showTimeService) ensureUnsold(ctx context.Context, showTimeID uuid.UUID) error {
	sold, err := s.repo.Ticket.CountByShowTimeID(ctx, showTimeID)
	if err != nil {
		return err
	}
	if sold > 0 {
		return newError(ErrInvalidOperation, "showtime %s already has %d tickets", showTimeID, sold)
	}
	return nil
}

func (s *showTimeService) find(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	showTime, err := s.repo.ShowTime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showTime == nil {
		return nil, newError(ErrNotFound, "showtime %s not found", id)
	}
	return showTime, nil
}

// toResponse decorates the showtime with movie and hall names; missing ones are left blank
func (s *showTimeService) toResponse(ctx context.Context, showTime *entity.ShowTime) (*response.ShowTimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, showTime.MovieID)
	if err != nil {
		return nil, err
	}
	hall, err := s.repo.Hall.FindByID(ctx, showTime.HallID)
	if err != nil {
		return nil, err
	}
	resp := showTimeResponse(showTime, movie, hall)
	return &resp, nil
}

func showTimeResponse(showTime *entity.ShowTime, movie *entity.Movie, hall *entity.Hall) response.ShowTimeResponse {
	resp := response.ShowTimeToResponse(showTime)
	if movie != nil {
		resp.MovieTitle = movie.Title
	}
	if hall != nil {
		resp.HallName = hall.Name
		resp.TheatreID = hall.TheatreID.String()
	}
	return resp
}

func checkShowTimeWindow(start, end time.Time, price float64) error {
	if !end.After(start) {
		return newError(ErrValidation, "end_time must be after start_time")
	}
	if price < 0 {
		return newError(ErrValidation, "base_price must not be negative")
	}
	return nil
}
