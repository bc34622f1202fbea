package usecase

import (
	"context"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WatchlistService interface {
	Add(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistItemResponse, error)
	Remove(ctx context.Context, userID, movieID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, lang string) ([]response.WatchlistItemResponse, error)
}

type watchlistService struct {
	repo   *repository.Repository
	movies *movieService
	log    *zap.Logger
}

func NewWatchlistService(repo *repository.Repository, movies *movieService, log *zap.Logger) WatchlistService {
	return &watchlistService{
		repo:   repo,
		movies: movies,
		log:    log.With(zap.String("service", "watchlist")),
	}
}

func (s *watchlistService) Add(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistItemResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid movie_id")
	}
	movie, err := s.movies.find(ctx, movieID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Watchlist.Find(ctx, client.ID, movie.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrConflict, "movie %s is already in the watchlist", movie.ID)
	}

	item := &entity.WatchlistItem{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ClientID:   client.ID,
		MovieID:    movie.ID,
	}
	if err := s.repo.Watchlist.Create(ctx, item); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "movie %s is already in the watchlist", movie.ID)
		}
		return nil, err
	}

	s.log.Info("Watchlist item added",
		zap.String("client_id", client.ID.String()),
		zap.String("movie_id", movie.ID.String()))

	return s.toResponse(ctx, item, movie, "")
}

func (s *watchlistService) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return err
	}

	item, err := s.repo.Watchlist.Find(ctx, client.ID, movieID)
	if err != nil {
		return err
	}
	if item == nil {
		return newError(ErrNotFound, "movie %s is not in the watchlist", movieID)
	}

	return s.repo.Watchlist.Delete(ctx, item.ID)
}

func (s *watchlistService) List(ctx context.Context, userID uuid.UUID, lang string) ([]response.WatchlistItemResponse, error) {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Watchlist.FindByClientID(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []response.WatchlistItemResponse{}, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.MovieID
	}
	movies, err := s.repo.Movie.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	result := make([]response.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		movie, ok := byID[item.MovieID]
		if !ok {
			// soft-deleted movies drop out of the list
			continue
		}
		resp, err := s.toResponse(ctx, item, movie, lang)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *watchlistService) toResponse(ctx context.Context, item *entity.WatchlistItem, movie *entity.Movie, lang string) (*response.WatchlistItemResponse, error) {
	movieResp, err := s.movies.toResponse(ctx, movie, lang)
	if err != nil {
		return nil, err
	}
	return &response.WatchlistItemResponse{
		ID:      item.ID.String(),
		Movie:   *movieResp,
		AddedAt: item.CreatedAt,
	}, nil
}
