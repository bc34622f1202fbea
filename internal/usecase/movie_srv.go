package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
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

type ImageKind string

const (
	ImagePoster   ImageKind = "poster"
	ImageBackdrop ImageKind = "backdrop"
)

// ImageUpload is a file received from a multipart form.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

type MovieService interface {
	Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.MovieResponse, error)
	List(ctx context.Context, query *request.MovieListQuery) (*response.PaginatedResponse[response.MovieResponse], error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, kind ImageKind, upload ImageUpload) (*response.MovieResponse, error)
}

type movieService struct {
	repo       *repository.Repository
	images     *imageResolver
	translator *catalogTranslator
	log        *zap.Logger
}

func NewMovieService(repo *repository.Repository, images *imageResolver, translator *catalogTranslator, log *zap.Logger) *movieService {
	return &movieService{
		repo:       repo,
		images:     images,
		translator: translator,
		log:        log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, newError(ErrValidation, "invalid release_date: %s", req.ReleaseDate)
	}

	genreIDs, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		ReleaseDate:     releaseDate,
		Rating:          req.Rating,
	}
	movie.Translations = s.translator.movieTranslations(ctx, movie.ID, movie.Title, movie.Description)

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Movie.Create(ctx, movie); err != nil {
			return err
		}
		if err := s.repo.MovieGenre.ReplaceForMovie(ctx, movie.ID, genreIDs); err != nil {
			return err
		}
		return s.repo.Movie.ReplaceTranslations(ctx, movie.ID, movie.Translations)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("genres", len(genreIDs)))

	return s.toResponse(ctx, movie, "")
}

func (s *movieService) Update(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	textChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		textChanged = textChanged || title != movie.Title
		movie.Title = title
	}
	if req.Description != nil {
		textChanged = true
		movie.Description = req.Description
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, newError(ErrValidation, "invalid release_date: %s", *req.ReleaseDate)
		}
		movie.ReleaseDate = releaseDate
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}

	var genreIDs []uuid.UUID
	if req.GenreIDs != nil {
		if genreIDs, err = s.resolveGenres(ctx, *req.GenreIDs); err != nil {
			return nil, err
		}
	}

	if textChanged {
		movie.Translations = s.translator.movieTranslations(ctx, movie.ID, movie.Title, movie.Description)
	}
	movie.UpdatedAt = time.Now()

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			return err
		}
		if req.GenreIDs != nil {
			if err := s.repo.MovieGenre.ReplaceForMovie(ctx, movie.ID, genreIDs); err != nil {
				return err
			}
		}
		if textChanged {
			return s.repo.Movie.ReplaceTranslations(ctx, movie.ID, movie.Translations)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, movie, "")
}

func (s *movieService) GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, movie, lang)
}

func (s *movieService) List(ctx context.Context, query *request.MovieListQuery) (*response.PaginatedResponse[response.MovieResponse], error) {
	if err := validate(query); err != nil {
		return nil, err
	}

	var genreID *uuid.UUID
	if query.GenreID != nil {
		id, err := uuid.Parse(*query.GenreID)
		if err != nil {
			return nil, newError(ErrValidation, "invalid genre_id")
		}
		genreID = &id
	}

	limit, offset := query.Limit(), query.Offset()
	movies, err := s.repo.Movie.FindAll(ctx, offset, limit, genreID)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	total, err := s.repo.Movie.CountAll(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp, err := s.toResponse(ctx, m, query.Lang)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, query.Page, limit, total), nil
}

func (s *movieService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) UploadImage(ctx context.Context, id uuid.UUID, kind ImageKind, upload ImageUpload) (*response.MovieResponse, error) {
	if kind != ImagePoster && kind != ImageBackdrop {
		return nil, newError(ErrValidation, "unknown image kind %q", kind)
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, newError(ErrValidation, "file must be an image")
	}
	if s.images.storage == nil {
		return nil, newError(ErrInvalidOperation, "image storage is not configured")
	}

	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("movies/%s/%s-%d%s", movie.ID, kind, time.Now().Unix(), strings.ToLower(path.Ext(upload.Filename)))
	if err := s.images.storage.Upload(ctx, upload.Reader, upload.Size, objectName, upload.ContentType, s.images.posterBucket); err != nil {
		return nil, fmt.Errorf("upload %s: %w", kind, err)
	}

	if kind == ImagePoster {
		movie.PosterObject = &objectName
	} else {
		movie.BackdropObject = &objectName
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie image uploaded",
		zap.String("movie_id", movie.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("object", objectName))

	return s.toResponse(ctx, movie, "")
}

func (s *movieService) find(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "movie %s not found", id)
	}
	return movie, nil
}

// resolveGenres parses ids and requires every genre to exist
func (s *movieService) resolveGenres(ctx context.Context, rawIDs []string) ([]uuid.UUID, error) {
	ids, err := utils.ParseUUIDs(rawIDs)
	if err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}
	if len(ids) == 0 {
		return ids, nil
	}

	genres, err := s.repo.Genre.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(ids) {
		return nil, newError(ErrNotFound, "one or more genres not found")
	}
	return ids, nil
}

func (s *movieService) toResponse(ctx context.Context, movie *entity.Movie, lang string) (*response.MovieResponse, error) {
	genres, err := s.repo.Genre.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return nil, err
	}

	title, description := movieText(movie, lang)
	resp := &response.MovieResponse{
		ID:              movie.ID.String(),
		Title:           title,
		Description:     description,
		DurationMinutes: movie.DurationMinutes,
		ReleaseDate:     movie.ReleaseDate.Format("2006-01-02"),
		Rating:          movie.Rating,
		PosterURL:       s.images.posterURL(ctx, movie.PosterObject),
		BackdropURL:     s.images.posterURL(ctx, movie.BackdropObject),
		Genres:          make([]response.GenreResponse, 0, len(genres)),
		CreatedAt:       movie.CreatedAt,
	}
	for _, g := range genres {
		resp.Genres = append(resp.Genres, genreToResponse(g, lang, false))
	}
	return resp, nil
}
