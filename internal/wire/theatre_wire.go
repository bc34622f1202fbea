package wire

import (
	"cineticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTheatre(r chi.Router, theatreHandler *adaptor.TheatreHandler) {
	r.Get("/api/theatres", theatreHandler.GetTheatres)
	r.Get("/api/theatres/{id}", theatreHandler.GetTheatreByID)
}

func wireAdminTheatre(r chi.Router, theatreHandler *adaptor.TheatreHandler, hallHandler *adaptor.HallHandler) {
	r.Route("/theatres", func(r chi.Router) {
		r.Get("/", theatreHandler.GetTheatres)
		r.Post("/", theatreHandler.CreateTheatre)
		r.Get("/{id}", theatreHandler.GetTheatreByID)
		r.Put("/{id}", theatreHandler.UpdateTheatre)
		r.Delete("/{id}", theatreHandler.DeleteTheatre)
		r.Get("/{id}/halls", theatreHandler.GetTheatreHalls)
	})

	r.Route("/halls", func(r chi.Router) {
		r.Post("/", hallHandler.CreateHall)
		r.Get("/{id}", hallHandler.GetHallByID)
		r.Put("/{id}", hallHandler.RenameHall)
		r.Delete("/{id}", hallHandler.DeleteHall)
	})
}
