package adaptor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct {
	createFn       func(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	listMineFn     func(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	getMineFn      func(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	getTicketFn    func(ctx context.Context, userID, ticketID uuid.UUID) (*response.TicketResponse, error)
	availabilityFn func(ctx context.Context, showTimeID uuid.UUID) (*response.SeatAvailabilityResponse, error)
	byShowTimeFn   func(ctx context.Context, showTimeID uuid.UUID) ([]response.BookingResponse, error)
	getFn          func(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	useTicketFn    func(ctx context.Context, ticketID uuid.UUID) (*response.TicketResponse, error)
}

var _ usecase.BookingService = (*mockBookingService)(nil)

func (m *mockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockBookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return m.listMineFn(ctx, userID, req)
}

func (m *mockBookingService) GetMyBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return m.getMineFn(ctx, userID, bookingID)
}

func (m *mockBookingService) GetMyTicket(ctx context.Context, userID, ticketID uuid.UUID) (*response.TicketResponse, error) {
	return m.getTicketFn(ctx, userID, ticketID)
}

func (m *mockBookingService) GetSeatAvailability(ctx context.Context, showTimeID uuid.UUID) (*response.SeatAvailabilityResponse, error) {
	return m.availabilityFn(ctx, showTimeID)
}

func (m *mockBookingService) ListByShowTime(ctx context.Context, showTimeID uuid.UUID) ([]response.BookingResponse, error) {
	return m.byShowTimeFn(ctx, showTimeID)
}

func (m *mockBookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return m.getFn(ctx, bookingID)
}

func (m *mockBookingService) UseTicket(ctx context.Context, ticketID uuid.UUID) (*response.TicketResponse, error) {
	return m.useTicketFn(ctx, ticketID)
}

type mockMovieService struct {
	createFn func(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID, lang string) (*response.MovieResponse, error)
	listFn   func(ctx context.Context, query *request.MovieListQuery) (*response.PaginatedResponse[response.MovieResponse], error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	uploadFn func(ctx context.Context, id uuid.UUID, kind usecase.ImageKind, upload usecase.ImageUpload) (*response.MovieResponse, error)
}

var _ usecase.MovieService = (*mockMovieService)(nil)

func (m *mockMovieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockMovieService) Update(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockMovieService) GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.MovieResponse, error) {
	return m.getFn(ctx, id, lang)
}

func (m *mockMovieService) List(ctx context.Context, query *request.MovieListQuery) (*response.PaginatedResponse[response.MovieResponse], error) {
	return m.listFn(ctx, query)
}

func (m *mockMovieService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockMovieService) UploadImage(ctx context.Context, id uuid.UUID, kind usecase.ImageKind, upload usecase.ImageUpload) (*response.MovieResponse, error) {
	return m.uploadFn(ctx, id, kind, upload)
}

// withUser puts an authenticated client on the request like the auth middleware does
func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), userID, utils.RoleClient))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (utils.Response, json.RawMessage) {
	t.Helper()
	var envelope struct {
		utils.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Response, envelope.Data
}

type mockGenreService struct {
	createFn func(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *request.GenreRequest) (*response.GenreResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID, lang string) (*response.GenreResponse, error)
	listFn   func(ctx context.Context, lang string) ([]response.GenreResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ usecase.GenreService = (*mockGenreService)(nil)

func (m *mockGenreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockGenreService) Update(ctx context.Context, id uuid.UUID, req *request.GenreRequest) (*response.GenreResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockGenreService) GetByID(ctx context.Context, id uuid.UUID, lang string) (*response.GenreResponse, error) {
	return m.getFn(ctx, id, lang)
}

func (m *mockGenreService) List(ctx context.Context, lang string) ([]response.GenreResponse, error) {
	return m.listFn(ctx, lang)
}

func (m *mockGenreService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockTheatreService struct {
	listFn   func(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.TheatreResponse], error)
	getFn    func(ctx context.Context, id uuid.UUID) (*response.TheatreDetailResponse, error)
	createFn func(ctx context.Context, req *request.TheatreRequest) (*response.TheatreResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *request.TheatreUpdateRequest) (*response.TheatreResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ usecase.TheatreService = (*mockTheatreService)(nil)

func (m *mockTheatreService) List(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.TheatreResponse], error) {
	return m.listFn(ctx, req, cityFilter)
}

func (m *mockTheatreService) GetByID(ctx context.Context, id uuid.UUID) (*response.TheatreDetailResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockTheatreService) Create(ctx context.Context, req *request.TheatreRequest) (*response.TheatreResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockTheatreService) Update(ctx context.Context, id uuid.UUID, req *request.TheatreUpdateRequest) (*response.TheatreResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockTheatreService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockHallService struct {
	createFn func(ctx context.Context, req *request.HallRequest) (*response.HallDetailResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*response.HallDetailResponse, error)
	listFn   func(ctx context.Context, theatreID uuid.UUID) ([]response.HallResponse, error)
	renameFn func(ctx context.Context, id uuid.UUID, req *request.HallUpdateRequest) (*response.HallResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ usecase.HallService = (*mockHallService)(nil)

func (m *mockHallService) Create(ctx context.Context, req *request.HallRequest) (*response.HallDetailResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockHallService) GetByID(ctx context.Context, id uuid.UUID) (*response.HallDetailResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockHallService) ListByTheatre(ctx context.Context, theatreID uuid.UUID) ([]response.HallResponse, error) {
	return m.listFn(ctx, theatreID)
}

func (m *mockHallService) Rename(ctx context.Context, id uuid.UUID, req *request.HallUpdateRequest) (*response.HallResponse, error) {
	return m.renameFn(ctx, id, req)
}

func (m *mockHallService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockShowTimeService struct {
	createFn func(ctx context.Context, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *request.ShowTimeUpdateRequest) (*response.ShowTimeResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*response.ShowTimeResponse, error)
	listFn   func(ctx context.Context, query *request.ShowTimeListQuery) (*response.PaginatedResponse[response.ShowTimeResponse], error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ usecase.ShowTimeService = (*mockShowTimeService)(nil)

func (m *mockShowTimeService) Create(ctx context.Context, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockShowTimeService) Update(ctx context.Context, id uuid.UUID, req *request.ShowTimeUpdateRequest) (*response.ShowTimeResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockShowTimeService) GetByID(ctx context.Context, id uuid.UUID) (*response.ShowTimeResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockShowTimeService) List(ctx context.Context, query *request.ShowTimeListQuery) (*response.PaginatedResponse[response.ShowTimeResponse], error) {
	return m.listFn(ctx, query)
}

func (m *mockShowTimeService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockWatchlistService struct {
	addFn    func(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistItemResponse, error)
	removeFn func(ctx context.Context, userID, movieID uuid.UUID) error
	listFn   func(ctx context.Context, userID uuid.UUID, lang string) ([]response.WatchlistItemResponse, error)
}

var _ usecase.WatchlistService = (*mockWatchlistService)(nil)

func (m *mockWatchlistService) Add(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistItemResponse, error) {
	return m.addFn(ctx, userID, req)
}

func (m *mockWatchlistService) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	return m.removeFn(ctx, userID, movieID)
}

func (m *mockWatchlistService) List(ctx context.Context, userID uuid.UUID, lang string) ([]response.WatchlistItemResponse, error) {
	return m.listFn(ctx, userID, lang)
}

type mockClientService struct {
	getFn    func(ctx context.Context, userID uuid.UUID) (*response.ClientResponse, error)
	updateFn func(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ClientResponse, error)
}

var _ usecase.ClientService = (*mockClientService)(nil)

func (m *mockClientService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ClientResponse, error) {
	return m.getFn(ctx, userID)
}

func (m *mockClientService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ClientResponse, error) {
	return m.updateFn(ctx, userID, req)
}

// serve runs one request through r; a non-nil user is attached as the caller
func serve(r http.Handler, method, target, body string, user *uuid.UUID) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = withUser(req, *user)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
