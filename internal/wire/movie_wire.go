package wire

import (
	"cineticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCatalog exposes movies and genres to clients
func wireCatalog(r chi.Router, handler *adaptor.Handler) {
	r.Get("/api/movies", handler.Movie.GetMovies)
	r.Get("/api/movies/{id}", handler.Movie.GetMovieByID)
	r.Get("/api/genres", handler.Genre.GetGenres)
}

// wireAdminCatalog mounts under /api/admin, auth and admin guards already applied
func wireAdminCatalog(r chi.Router, handler *adaptor.Handler) {
	r.Route("/genres", func(r chi.Router) {
		r.Get("/", handler.Genre.GetGenres)
		r.Post("/", handler.Genre.CreateGenre)
		r.Get("/{id}", handler.Genre.GetGenreByID)
		r.Put("/{id}", handler.Genre.UpdateGenre)
		r.Delete("/{id}", handler.Genre.DeleteGenre)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", handler.Movie.GetMovies)
		r.Post("/", handler.Movie.CreateMovie)
		r.Get("/{id}", handler.Movie.GetMovieByID)
		r.Put("/{id}", handler.Movie.UpdateMovie)
		r.Delete("/{id}", handler.Movie.DeleteMovie)
		r.Post("/{id}/poster", handler.Movie.UploadPoster)
		r.Post("/{id}/backdrop", handler.Movie.UploadBackdrop)
	})
}
