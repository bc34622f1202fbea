package adaptor

import (
	"net/http"

	"cineticket/internal/dto/request"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

type ShowTimeHandler struct {
	service  usecase.ShowTimeService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewShowTimeHandler(service usecase.ShowTimeService, bookings usecase.BookingService, log *zap.Logger) *ShowTimeHandler {
	return &ShowTimeHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "showtime")),
	}
}

// GetShowTimes handles GET /api/showtimes?movie_id=&date=2006-01-02
func (h *ShowTimeHandler) GetShowTimes(w http.ResponseWriter, r *http.Request) {
	query := &request.ShowTimeListQuery{
		PaginatedRequest: paginationFrom(r),
		MovieID:          optionalQuery(r, "movie_id"),
		Date:             optionalQuery(r, "date"),
	}

	showTimes, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showTimes)
}

// GetShowTimeByID handles GET /api/showtimes/{id}
func (h *ShowTimeHandler) GetShowTimeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	showTime, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showTime)
}

// GetSeatAvailability handles GET /api/showtimes/{id}/seats
func (h *ShowTimeHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	seats, err := h.bookings.GetSeatAvailability(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetShowTimeBookings handles GET /api/admin/showtimes/{id}/bookings
func (h *ShowTimeHandler) GetShowTimeBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByShowTime(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CreateShowTime handles POST /api/admin/showtimes
func (h *ShowTimeHandler) CreateShowTime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowTimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showTime, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", showTime)
}

// UpdateShowTime handles PUT /api/admin/showtimes/{id}
func (h *ShowTimeHandler) UpdateShowTime(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.ShowTimeUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showTime, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showTime)
}

// DeleteShowTime handles DELETE /api/admin/showtimes/{id}
func (h *ShowTimeHandler) DeleteShowTime(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}
