package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"
	"testing"
	"time"

	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for Postgres. WithinTx snapshots every
// table and restores it when fn fails, so rollbacks are observable.
type memStore struct {
	users       map[uuid.UUID]entity.User
	clients     map[uuid.UUID]entity.Client
	genres      map[uuid.UUID]entity.Genre
	movies      map[uuid.UUID]entity.Movie
	movieGenres map[uuid.UUID]entity.MovieGenre
	theatres    map[uuid.UUID]entity.Theatre
	halls       map[uuid.UUID]entity.Hall
	seats       map[uuid.UUID]entity.Seat
	showTimes   map[uuid.UUID]entity.ShowTime
	bookings    map[uuid.UUID]entity.Booking
	tickets     map[uuid.UUID]entity.Ticket
	payments    map[uuid.UUID]entity.Payment
	watchlist   map[uuid.UUID]entity.WatchlistItem

	// fail makes the named operation ("payment.create") return the error
	fail map[string]error
	// afterShowTimeTickets runs once right after the next FindByShowTimeID read
	afterShowTimeTickets func()
	// afterTicketRead runs once right after the next ticket FindByID
	afterTicketRead func()
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[uuid.UUID]entity.User{},
		clients:     map[uuid.UUID]entity.Client{},
		genres:      map[uuid.UUID]entity.Genre{},
		movies:      map[uuid.UUID]entity.Movie{},
		movieGenres: map[uuid.UUID]entity.MovieGenre{},
		theatres:    map[uuid.UUID]entity.Theatre{},
		halls:       map[uuid.UUID]entity.Hall{},
		seats:       map[uuid.UUID]entity.Seat{},
		showTimes:   map[uuid.UUID]entity.ShowTime{},
		bookings:    map[uuid.UUID]entity.Booking{},
		tickets:     map[uuid.UUID]entity.Ticket{},
		payments:    map[uuid.UUID]entity.Payment{},
		watchlist:   map[uuid.UUID]entity.WatchlistItem{},
		fail:        map[string]error{},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := *m
	snapshot.users = maps.Clone(m.users)
	snapshot.clients = maps.Clone(m.clients)
	snapshot.genres = maps.Clone(m.genres)
	snapshot.movies = maps.Clone(m.movies)
	snapshot.movieGenres = maps.Clone(m.movieGenres)
	snapshot.theatres = maps.Clone(m.theatres)
	snapshot.halls = maps.Clone(m.halls)
	snapshot.seats = maps.Clone(m.seats)
	snapshot.showTimes = maps.Clone(m.showTimes)
	snapshot.bookings = maps.Clone(m.bookings)
	snapshot.tickets = maps.Clone(m.tickets)
	snapshot.payments = maps.Clone(m.payments)
	snapshot.watchlist = maps.Clone(m.watchlist)

	if err := fn(ctx); err != nil {
		*m = snapshot
		return err
	}
	return nil
}

func (m *memStore) failed(op string) error {
	return m.fail[op]
}

func uniqueViolation(constraint string) error {
	return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraint})
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:         m,
		User:       memUsers{m},
		Client:     memClients{m},
		Genre:      memGenres{m},
		Movie:      memMovies{m},
		MovieGenre: memMovieGenres{m},
		Theatre:    memTheatres{m},
		Hall:       memHalls{m},
		Seat:       memSeats{m},
		ShowTime:   memShowTimes{m},
		Booking:    memBookings{m},
		Ticket:     memTickets{m},
		Payment:    memPayments{m},
		Watchlist:  memWatchlist{m},
	}
}

// ==================== users & clients ====================

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uniqueViolation("users_email_key")
		}
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type memClients struct{ m *memStore }

func (r memClients) Create(_ context.Context, client *entity.Client) error {
	if err := r.m.failed("client.create"); err != nil {
		return err
	}
	r.m.clients[client.ID] = *client
	return nil
}

func (r memClients) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	if c, ok := r.m.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memClients) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Client, error) {
	for _, c := range r.m.clients {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memClients) Update(_ context.Context, client *entity.Client) error {
	r.m.clients[client.ID] = *client
	return nil
}

// ==================== catalog ====================

type memGenres struct{ m *memStore }

func (r memGenres) Create(_ context.Context, genre *entity.Genre) error {
	r.m.genres[genre.ID] = *genre
	return nil
}

func (r memGenres) FindByID(_ context.Context, id uuid.UUID) (*entity.Genre, error) {
	if g, ok := r.m.genres[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r memGenres) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, id := range ids {
		if g, ok := r.m.genres[id]; ok {
			out = append(out, &g)
		}
	}
	return out, nil
}

func (r memGenres) FindByName(_ context.Context, name string) (*entity.Genre, error) {
	for _, g := range r.m.genres {
		if strings.EqualFold(g.Name, name) {
			return &g, nil
		}
	}
	return nil, nil
}

func (r memGenres) FindAll(_ context.Context) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range r.m.genres {
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memGenres) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, link := range r.m.movieGenres {
		if link.MovieID != movieID {
			continue
		}
		if g, ok := r.m.genres[link.GenreID]; ok {
			out = append(out, &g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memGenres) Update(_ context.Context, genre *entity.Genre) error {
	stored := r.m.genres[genre.ID]
	stored.Name = genre.Name
	stored.UpdatedAt = genre.UpdatedAt
	r.m.genres[genre.ID] = stored
	return nil
}

func (r memGenres) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.m.genres, id)
	return nil
}

func (r memGenres) ReplaceTranslations(_ context.Context, genreID uuid.UUID, translations []entity.GenreTranslation) error {
	stored := r.m.genres[genreID]
	stored.Translations = append([]entity.GenreTranslation(nil), translations...)
	r.m.genres[genreID] = stored
	return nil
}

type memMovies struct{ m *memStore }

func (r memMovies) Create(_ context.Context, movie *entity.Movie) error {
	r.m.movies[movie.ID] = *movie
	return nil
}

func (r memMovies) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	if mv, ok := r.m.movies[id]; ok && mv.DeletedAt == nil {
		return &mv, nil
	}
	return nil, nil
}

func (r memMovies) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, id := range ids {
		if mv, _ := r.FindByID(ctx, id); mv != nil {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (r memMovies) Update(_ context.Context, movie *entity.Movie) error {
	stored := r.m.movies[movie.ID]
	translations := stored.Translations
	stored = *movie
	stored.Translations = translations
	r.m.movies[movie.ID] = stored
	return nil
}

func (r memMovies) Delete(_ context.Context, id uuid.UUID) error {
	mv := r.m.movies[id]
	now := time.Now()
	mv.DeletedAt = &now
	r.m.movies[id] = mv
	return nil
}

func (r memMovies) matching(genreID *uuid.UUID) []*entity.Movie {
	var out []*entity.Movie
	for _, mv := range r.m.movies {
		if mv.DeletedAt != nil {
			continue
		}
		if genreID != nil && !r.hasGenre(mv.ID, *genreID) {
			continue
		}
		out = append(out, &mv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (r memMovies) hasGenre(movieID, genreID uuid.UUID) bool {
	for _, link := range r.m.movieGenres {
		if link.MovieID == movieID && link.GenreID == genreID {
			return true
		}
	}
	return false
}

func (r memMovies) FindAll(_ context.Context, offset, limit int, genreID *uuid.UUID) ([]*entity.Movie, error) {
	return page(r.matching(genreID), offset, limit), nil
}

func (r memMovies) CountAll(_ context.Context, genreID *uuid.UUID) (int64, error) {
	return int64(len(r.matching(genreID))), nil
}

func (r memMovies) ReplaceTranslations(_ context.Context, movieID uuid.UUID, translations []entity.MovieTranslation) error {
	stored := r.m.movies[movieID]
	stored.Translations = append([]entity.MovieTranslation(nil), translations...)
	r.m.movies[movieID] = stored
	return nil
}

type memMovieGenres struct{ m *memStore }

func (r memMovieGenres) ReplaceForMovie(_ context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	for id, link := range r.m.movieGenres {
		if link.MovieID == movieID {
			delete(r.m.movieGenres, id)
		}
	}
	for _, genreID := range genreIDs {
		id := uuid.New()
		r.m.movieGenres[id] = entity.MovieGenre{
			BaseSimple: entity.BaseSimple{ID: id, CreatedAt: time.Now()},
			MovieID:    movieID,
			GenreID:    genreID,
		}
	}
	return nil
}

func (r memMovieGenres) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.MovieGenre, error) {
	var out []*entity.MovieGenre
	for _, link := range r.m.movieGenres {
		if link.MovieID == movieID {
			out = append(out, &link)
		}
	}
	return out, nil
}

type memTheatres struct{ m *memStore }

func (r memTheatres) Create(_ context.Context, theatre *entity.Theatre) error {
	r.m.theatres[theatre.ID] = *theatre
	return nil
}

func (r memTheatres) FindByID(_ context.Context, id uuid.UUID) (*entity.Theatre, error) {
	if t, ok := r.m.theatres[id]; ok && t.DeletedAt == nil {
		return &t, nil
	}
	return nil, nil
}

func (r memTheatres) matching(city *string) []*entity.Theatre {
	var out []*entity.Theatre
	for _, t := range r.m.theatres {
		if t.DeletedAt != nil || (city != nil && !strings.EqualFold(t.City, *city)) {
			continue
		}
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memTheatres) FindAll(_ context.Context, limit, offset int, cityFilter *string) ([]*entity.Theatre, error) {
	return page(r.matching(cityFilter), offset, limit), nil
}

func (r memTheatres) CountAll(_ context.Context, cityFilter *string) (int64, error) {
	return int64(len(r.matching(cityFilter))), nil
}

func (r memTheatres) Update(_ context.Context, theatre *entity.Theatre) error {
	r.m.theatres[theatre.ID] = *theatre
	return nil
}

func (r memTheatres) Delete(_ context.Context, id uuid.UUID) error {
	t := r.m.theatres[id]
	now := time.Now()
	t.DeletedAt = &now
	r.m.theatres[id] = t
	return nil
}

// ==================== halls & seats ====================

type memHalls struct{ m *memStore }

func (r memHalls) Create(_ context.Context, hall *entity.Hall) error {
	r.m.halls[hall.ID] = *hall
	return nil
}

func (r memHalls) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	if h, ok := r.m.halls[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (r memHalls) FindByTheatreID(_ context.Context, theatreID uuid.UUID) ([]*entity.Hall, error) {
	var out []*entity.Hall
	for _, h := range r.m.halls {
		if h.TheatreID == theatreID {
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memHalls) Update(_ context.Context, hall *entity.Hall) error {
	r.m.halls[hall.ID] = *hall
	return nil
}

func (r memHalls) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.m.halls, id)
	for seatID, s := range r.m.seats {
		if s.HallID == id {
			delete(r.m.seats, seatID)
		}
	}
	return nil
}

type memSeats struct{ m *memStore }

func (r memSeats) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	if err := r.m.failed("seat.create_batch"); err != nil {
		return err
	}
	for _, s := range seats {
		r.m.seats[s.ID] = *s
	}
	return nil
}

func (r memSeats) FindByHallID(_ context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, s := range r.m.seats {
		if s.HallID == hallID {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowNumber != out[j].RowNumber {
			return out[i].RowNumber < out[j].RowNumber
		}
		return out[i].ColumnNumber < out[j].ColumnNumber
	})
	return out, nil
}

func (r memSeats) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range ids {
		if s, ok := r.m.seats[id]; ok {
			out = append(out, &s)
		}
	}
	return out, nil
}

// ==================== showtimes ====================

type memShowTimes struct{ m *memStore }

func (r memShowTimes) Create(_ context.Context, showTime *entity.ShowTime) error {
	r.m.showTimes[showTime.ID] = *showTime
	return nil
}

func (r memShowTimes) FindByID(_ context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	if st, ok := r.m.showTimes[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r memShowTimes) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	return r.FindByID(ctx, id)
}

func (r memShowTimes) matching(filter repository.ShowTimeFilter) []*entity.ShowTime {
	var out []*entity.ShowTime
	for _, st := range r.m.showTimes {
		if filter.MovieID != nil && st.MovieID != *filter.MovieID {
			continue
		}
		if filter.HallID != nil && st.HallID != *filter.HallID {
			continue
		}
		if filter.From != nil && st.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !st.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r memShowTimes) FindAll(_ context.Context, filter repository.ShowTimeFilter, limit, offset int) ([]*entity.ShowTime, error) {
	return page(r.matching(filter), offset, limit), nil
}

func (r memShowTimes) CountAll(_ context.Context, filter repository.ShowTimeFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r memShowTimes) CountByHallID(_ context.Context, hallID uuid.UUID) (int64, error) {
	return int64(len(r.matching(repository.ShowTimeFilter{HallID: &hallID}))), nil
}

func (r memShowTimes) Update(_ context.Context, showTime *entity.ShowTime) error {
	r.m.showTimes[showTime.ID] = *showTime
	return nil
}

func (r memShowTimes) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.m.showTimes, id)
	return nil
}

// ==================== bookings, tickets, payments ====================

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, booking *entity.Booking) error {
	if err := r.m.failed("booking.create"); err != nil {
		return err
	}
	r.m.bookings[booking.ID] = *booking
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	if b, ok := r.m.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r memBookings) byClient(clientID uuid.UUID) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.m.bookings {
		if b.ClientID == clientID {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memBookings) FindByClientID(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return page(r.byClient(clientID), offset, limit), nil
}

func (r memBookings) CountByClientID(_ context.Context, clientID uuid.UUID) (int64, error) {
	return int64(len(r.byClient(clientID))), nil
}

func (r memBookings) FindByShowTimeID(_ context.Context, showTimeID uuid.UUID) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.m.bookings {
		if b.ShowTimeID == showTimeID {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memBookings) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	b := r.m.bookings[bookingID]
	b.Status = status
	r.m.bookings[bookingID] = b
	return nil
}

type memTickets struct{ m *memStore }

// CreateBatch enforces unique(show_time_id, seat_id) like the real table.
func (r memTickets) CreateBatch(_ context.Context, tickets []*entity.Ticket) error {
	for _, t := range tickets {
		if booking, ok := r.m.bookings[t.BookingID]; !ok || booking.ShowTimeID != t.ShowTimeID {
			return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "fk_tickets_booking_show_time"})
		}
		for _, existing := range r.m.tickets {
			if existing.ShowTimeID == t.ShowTimeID && existing.SeatID == t.SeatID {
				return uniqueViolation("uq_tickets_show_time_seat")
			}
		}
	}
	for _, t := range tickets {
		r.m.tickets[t.ID] = *t
	}
	return nil
}

func (r memTickets) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	t, ok := r.m.tickets[id]
	if hook := r.m.afterTicketRead; hook != nil {
		r.m.afterTicketRead = nil
		hook()
	}
	if ok {
		return &t, nil
	}
	return nil, nil
}

func (r memTickets) where(keep func(entity.Ticket) bool) []*entity.Ticket {
	var out []*entity.Ticket
	for _, t := range r.m.tickets {
		if keep(t) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r memTickets) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error) {
	return r.where(func(t entity.Ticket) bool { return t.BookingID == bookingID }), nil
}

func (r memTickets) FindByShowTimeID(_ context.Context, showTimeID uuid.UUID) ([]*entity.Ticket, error) {
	tickets := r.where(func(t entity.Ticket) bool { return t.ShowTimeID == showTimeID })
	if hook := r.m.afterShowTimeTickets; hook != nil {
		r.m.afterShowTimeTickets = nil
		hook()
	}
	return tickets, nil
}

func (r memTickets) FindByShowTimeAndSeats(_ context.Context, showTimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Ticket, error) {
	wanted := make(map[uuid.UUID]bool, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = true
	}
	return r.where(func(t entity.Ticket) bool { return t.ShowTimeID == showTimeID && wanted[t.SeatID] }), nil
}

func (r memTickets) CountByShowTimeID(ctx context.Context, showTimeID uuid.UUID) (int64, error) {
	tickets, _ := r.FindByShowTimeID(ctx, showTimeID)
	return int64(len(tickets)), nil
}

func (r memTickets) MarkUsed(_ context.Context, id uuid.UUID) (bool, error) {
	t, ok := r.m.tickets[id]
	if !ok || t.Status != entity.TicketStatusPaid {
		return false, nil
	}
	t.Status = entity.TicketStatusUsed
	r.m.tickets[id] = t
	return true, nil
}

func (r memTickets) UpdateStatusByBookingID(_ context.Context, bookingID uuid.UUID, status entity.TicketStatus) error {
	for id, t := range r.m.tickets {
		if t.BookingID == bookingID {
			t.Status = status
			r.m.tickets[id] = t
		}
	}
	return nil
}

func (r memTickets) UpdateQRCode(_ context.Context, id uuid.UUID, qrCode string) error {
	t := r.m.tickets[id]
	t.QRCode = &qrCode
	r.m.tickets[id] = t
	return nil
}

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, payment *entity.Payment) error {
	if err := r.m.failed("payment.create"); err != nil {
		return err
	}
	r.m.payments[payment.ID] = *payment
	return nil
}

func (r memPayments) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.m.payments {
		if p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memPayments) MarkPaid(_ context.Context, paymentID uuid.UUID, transactionID string, paidAt time.Time) error {
	p := r.m.payments[paymentID]
	p.Status = entity.PaymentStatusPaid
	p.TransactionID = &transactionID
	p.PaidAt = &paidAt
	r.m.payments[paymentID] = p
	return nil
}

// ==================== watchlist ====================

type memWatchlist struct{ m *memStore }

func (r memWatchlist) Create(_ context.Context, item *entity.WatchlistItem) error {
	for _, existing := range r.m.watchlist {
		if existing.ClientID == item.ClientID && existing.MovieID == item.MovieID {
			return uniqueViolation("uq_watchlist_client_movie")
		}
	}
	r.m.watchlist[item.ID] = *item
	return nil
}

func (r memWatchlist) Find(_ context.Context, clientID, movieID uuid.UUID) (*entity.WatchlistItem, error) {
	for _, item := range r.m.watchlist {
		if item.ClientID == clientID && item.MovieID == movieID {
			return &item, nil
		}
	}
	return nil, nil
}

func (r memWatchlist) FindByClientID(_ context.Context, clientID uuid.UUID) ([]*entity.WatchlistItem, error) {
	var out []*entity.WatchlistItem
	for _, item := range r.m.watchlist {
		if item.ClientID == clientID {
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memWatchlist) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.m.watchlist, id)
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== integrations ====================

type fakeStorage struct {
	objects   map[string][]byte
	uploadErr error
	presign   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) GetImageURL(_ context.Context, objectName string, _ time.Duration, bucket string) (string, error) {
	if f.presign != nil {
		return "", f.presign
	}
	return "https://cdn.test/" + bucket + "/" + objectName, nil
}

func (f *fakeStorage) UploadBytes(_ context.Context, data []byte, objectName, _, bucket string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[bucket+"/"+objectName] = data
	return nil
}

func (f *fakeStorage) Upload(ctx context.Context, r io.Reader, _ int64, objectName, contentType, bucket string) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return err
	}
	return f.UploadBytes(ctx, buf.Bytes(), objectName, contentType, bucket)
}

type fakeTranslator struct {
	err error
}

// TranslateMultiple prefixes the text with the language code, e.g. "ru:Drama".
func (f fakeTranslator) TranslateMultiple(_ context.Context, text string, targets []string, source string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(targets))
	for _, lang := range targets {
		if lang == source {
			out[lang] = text
			continue
		}
		out[lang] = lang + ":" + text
	}
	return out, nil
}

// fakeSeatCache mirrors the redis cache: Set is ignored once the version moved.
type fakeSeatCache struct {
	entries     map[uuid.UUID][]entity.SeatAvailability
	versions    map[uuid.UUID]int64
	invalidated []uuid.UUID
}

func newFakeSeatCache() *fakeSeatCache {
	return &fakeSeatCache{
		entries:  map[uuid.UUID][]entity.SeatAvailability{},
		versions: map[uuid.UUID]int64{},
	}
}

func (c *fakeSeatCache) Get(_ context.Context, id uuid.UUID) ([]entity.SeatAvailability, bool) {
	seats, ok := c.entries[id]
	return seats, ok
}

func (c *fakeSeatCache) Version(_ context.Context, id uuid.UUID) (int64, bool) {
	return c.versions[id], true
}

func (c *fakeSeatCache) Set(_ context.Context, id uuid.UUID, version int64, seats []entity.SeatAvailability) {
	if c.versions[id] != version {
		return
	}
	c.entries[id] = seats
}

func (c *fakeSeatCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.entries, id)
	c.versions[id]++
	c.invalidated = append(c.invalidated, id)
	return nil
}

type fakePublisher struct {
	events []any
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// ==================== fixture ====================

type fixture struct {
	store      *memStore
	storage    *fakeStorage
	cache      *fakeSeatCache
	publisher  *fakePublisher
	service    *Service
	tokens     *utils.TokenIssuer
	config     *utils.Config
	translator fakeTranslator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     newMemStore(),
		storage:   newFakeStorage(),
		cache:     newFakeSeatCache(),
		publisher: &fakePublisher{},
		tokens:    utils.NewTokenIssuer("test-secret", time.Hour),
		config: &utils.Config{
			Storage: utils.StorageConfig{
				PosterBucket:         "posters",
				TicketBucket:         "tickets",
				PresignExpirySeconds: 60,
			},
			Translation: utils.TranslationConfig{
				SourceLanguage: "en",
				Languages:      []string{"en", "ru", "az"},
			},
		},
	}
	f.rebuild()
	return f
}

// rebuild recreates the services after integrations were swapped
func (f *fixture) rebuild() {
	integrations := Integrations{
		Translator: f.translator,
		SeatCache:  f.cache,
		Publisher:  f.publisher,
		Tokens:     f.tokens,
	}
	if f.storage != nil {
		integrations.Storage = f.storage
	}
	f.service = NewService(f.store.repository(), integrations, f.config, zap.NewNop())
}

func (f *fixture) client(t *testing.T) (userID uuid.UUID, client entity.Client) {
	t.Helper()
	now := time.Now()
	user := entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        uuid.NewString() + "@example.com",
		Role:         entity.RoleClient,
	}
	client = entity.Client{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       user.ID,
		Name:         "Leyla",
		Surname:      "Aliyeva",
	}
	f.store.users[user.ID] = user
	f.store.clients[client.ID] = client
	return user.ID, client
}

func (f *fixture) movie(title string, minutes int) entity.Movie {
	now := time.Now()
	movie := entity.Movie{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:           title,
		DurationMinutes: minutes,
		ReleaseDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Rating:          7.5,
	}
	f.store.movies[movie.ID] = movie
	return movie
}

func (f *fixture) theatre(name string) entity.Theatre {
	now := time.Now()
	theatre := entity.Theatre{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:    name,
		Address: "28 May st.",
		City:    "Baku",
	}
	f.store.theatres[theatre.ID] = theatre
	return theatre
}

// hall stores a rows x columns hall with its seat grid
func (f *fixture) hall(theatreID uuid.UUID, rows, columns int) (entity.Hall, []*entity.Seat) {
	now := time.Now()
	hall := entity.Hall{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TheatreID:    theatreID,
		Name:         "Hall " + uuid.NewString()[:4],
		Rows:         rows,
		Columns:      columns,
	}
	f.store.halls[hall.ID] = hall
	seats := seatGrid(&hall)
	for _, s := range seats {
		f.store.seats[s.ID] = *s
	}
	return hall, seats
}

func (f *fixture) showTime(movieID, hallID uuid.UUID, price float64) entity.ShowTime {
	now := time.Now()
	start := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	st := entity.ShowTime{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:      movieID,
		HallID:       hallID,
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		BasePrice:    price,
	}
	f.store.showTimes[st.ID] = st
	return st
}

func seatIDStrings(seats ...*entity.Seat) []string {
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID.String()
	}
	return ids
}
