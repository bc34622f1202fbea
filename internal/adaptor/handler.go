package adaptor

import (
	"cineticket/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Genre     *GenreHandler
	Movie     *MovieHandler
	Theatre   *TheatreHandler
	Hall      *HallHandler
	ShowTime  *ShowTimeHandler
	Booking   *BookingHandler
	Watchlist *WatchlistHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Profile:   NewProfileHandler(service.Client, log),
		Genre:     NewGenreHandler(service.Genre, log),
		Movie:     NewMovieHandler(service.Movie, log),
		Theatre:   NewTheatreHandler(service.Theatre, service.Hall, log),
		Hall:      NewHallHandler(service.Hall, log),
		ShowTime:  NewShowTimeHandler(service.ShowTime, service.Booking, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Watchlist: NewWatchlistHandler(service.Watchlist, log),
	}
}
