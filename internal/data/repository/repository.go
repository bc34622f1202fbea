package repository

import (
	"cineticket/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx         database.Transactor
	User       UserRepository
	Client     ClientRepository
	Genre      GenreRepository
	Movie      MovieRepository
	MovieGenre MovieGenreRepository
	Theatre    TheatreRepository
	Hall       HallRepository
	Seat       SeatRepository
	ShowTime   ShowTimeRepository
	Booking    BookingRepository
	Ticket     TicketRepository
	Payment    PaymentRepository
	Watchlist  WatchlistRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:         db,
		User:       NewUserRepository(db, log),
		Client:     NewClientRepository(db, log),
		Genre:      NewGenreRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		MovieGenre: NewMovieGenreRepository(db, log),
		Theatre:    NewTheatreRepository(db, log),
		Hall:       NewHallRepository(db, log),
		Seat:       NewSeatRepository(db, log),
		ShowTime:   NewShowTimeRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Ticket:     NewTicketRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
		Watchlist:  NewWatchlistRepository(db, log),
	}
}
