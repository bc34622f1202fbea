package usecase

import (
	"cineticket/internal/data/cache"
	"cineticket/internal/data/repository"
	"cineticket/pkg/events"
	"cineticket/pkg/storage"
	"cineticket/pkg/translate"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

// Integrations bundles the external collaborators services talk to.
// Storage and Translator may be nil; the dependent steps are then skipped.
type Integrations struct {
	Storage    storage.ImageService
	Translator translate.Translator
	SeatCache  cache.SeatMapCache
	Publisher  events.Publisher
	Tokens     *utils.TokenIssuer
}

type Service struct {
	Auth      AuthService
	Client    ClientService
	Genre     GenreService
	Movie     MovieService
	Theatre   TheatreService
	Hall      HallService
	ShowTime  ShowTimeService
	Booking   BookingService
	Watchlist WatchlistService
}

func NewService(repo *repository.Repository, integrations Integrations, config *utils.Config, log *zap.Logger) *Service {
	if integrations.SeatCache == nil {
		integrations.SeatCache = cache.NoopSeatMapCache{}
	}
	if integrations.Publisher == nil {
		integrations.Publisher = events.NoopPublisher{}
	}

	images := newImageResolver(integrations.Storage, config.Storage, log)
	translator := newCatalogTranslator(integrations.Translator, config.Translation, log)
	movies := NewMovieService(repo, images, translator, log)

	return &Service{
		Auth:      NewAuthService(repo, integrations.Tokens, log),
		Client:    NewClientService(repo, log),
		Genre:     NewGenreService(repo, translator, log),
		Movie:     movies,
		Theatre:   NewTheatreService(repo, log),
		Hall:      NewHallService(repo, log),
		ShowTime:  NewShowTimeService(repo, log),
		Booking:   NewBookingService(repo, images, integrations.SeatCache, integrations.Publisher, log),
		Watchlist: NewWatchlistService(repo, movies, log),
	}
}
