package wire

import (
	"cineticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, showTimeHandler *adaptor.ShowTimeHandler, bookingHandler *adaptor.BookingHandler, g guards) {
	// public
	r.Get("/api/showtimes", showTimeHandler.GetShowTimes)
	r.Get("/api/showtimes/{id}", showTimeHandler.GetShowTimeByID)
	r.Get("/api/showtimes/{id}/seats", showTimeHandler.GetSeatAvailability)

	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.With(g.rateLimit).Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings", bookingHandler.GetMyBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetMyBooking)
		r.Get("/api/tickets/{id}", bookingHandler.GetMyTicket)
	})
}

func wireAdminBooking(r chi.Router, showTimeHandler *adaptor.ShowTimeHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/", showTimeHandler.GetShowTimes)
		r.Post("/", showTimeHandler.CreateShowTime)
		r.Get("/{id}", showTimeHandler.GetShowTimeByID)
		r.Put("/{id}", showTimeHandler.UpdateShowTime)
		r.Delete("/{id}", showTimeHandler.DeleteShowTime)
		r.Get("/{id}/seats", showTimeHandler.GetSeatAvailability)
		r.Get("/{id}/bookings", showTimeHandler.GetShowTimeBookings)
	})

	r.Get("/bookings/{id}", bookingHandler.GetBooking)
	r.Post("/tickets/{id}/use", bookingHandler.UseTicket)
}
