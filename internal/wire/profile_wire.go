package wire

import (
	"cineticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProfile(r chi.Router, profileHandler *adaptor.ProfileHandler, watchlistHandler *adaptor.WatchlistHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/api/profile", profileHandler.GetProfile)
		r.Put("/api/profile", profileHandler.UpdateProfile)

		r.Get("/api/watchlist", watchlistHandler.GetWatchlist)
		r.Post("/api/watchlist", watchlistHandler.AddToWatchlist)
		r.Delete("/api/watchlist/{movieId}", watchlistHandler.RemoveFromWatchlist)
	})
}
