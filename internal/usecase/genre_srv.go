package usecase

import (
	"context"
	"strings"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreService interface {
	Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.GenreRequest) (*response.GenreResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.GenreResponse, error)
	List(ctx context.Context, lang string) ([]response.GenreResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreService struct {
	repo       *repository.Repository
	translator *catalogTranslator
	log        *zap.Logger
}

func NewGenreService(repo *repository.Repository, translator *catalogTranslator, log *zap.Logger) GenreService {
	return &genreService{
		repo:       repo,
		translator: translator,
		log:        log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.Genre.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrConflict, "genre %q already exists", name)
	}

	now := time.Now()
	genre := &entity.Genre{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
	}
	genre.Translations = s.translator.genreTranslations(ctx, genre.ID, genre.Name)

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Genre.Create(ctx, genre); err != nil {
			return err
		}
		return s.repo.Genre.ReplaceTranslations(ctx, genre.ID, genre.Translations)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "genre %q already exists", name)
		}
		return nil, err
	}

	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.String()),
		zap.Int("translations", len(genre.Translations)))

	resp := genreToResponse(genre, "", true)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, req *request.GenreRequest) (*response.GenreResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	genre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if other, err := s.repo.Genre.FindByName(ctx, name); err != nil {
		return nil, err
	} else if other != nil && other.ID != genre.ID {
		return nil, newError(ErrConflict, "genre %q already exists", name)
	}

	nameChanged := name != genre.Name
	if nameChanged {
		genre.Translations = s.translator.genreTranslations(ctx, genre.ID, name)
	}
	genre.Name = name
	genre.UpdatedAt = time.Now()

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Genre.Update(ctx, genre); err != nil {
			return err
		}
		if !nameChanged {
			return nil
		}
		return s.repo.Genre.ReplaceTranslations(ctx, genre.ID, genre.Translations)
	})
	if err != nil {
		return nil, err
	}

	resp := genreToResponse(genre, "", true)
	return &resp, nil
}

func (s *genreService) GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := genreToResponse(genre, lang, lang == "")
	return &resp, nil
}

func (s *genreService) List(ctx context.Context, lang string) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.GenreResponse, 0, len(genres))
	for _, g := range genres {
		resp = append(resp, genreToResponse(g, lang, false))
	}
	return resp, nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Genre.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Genre deleted", zap.String("genre_id", id.String()))
	return nil
}

func (s *genreService) find(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, newError(ErrNotFound, "genre %s not found", id)
	}
	return genre, nil
}

func genreToResponse(genre *entity.Genre, lang string, withTranslations bool) response.GenreResponse {
	resp := response.GenreResponse{
		ID:   genre.ID.String(),
		Name: genreName(genre, lang),
	}
	if withTranslations && len(genre.Translations) > 0 {
		resp.Translations = make(map[string]string, len(genre.Translations))
		for _, t := range genre.Translations {
			resp.Translations[t.LanguageCode] = t.Name
		}
	}
	return resp
}
