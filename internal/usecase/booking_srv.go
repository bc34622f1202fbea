package usecase

import (
	"context"
	"fmt"
	"time"

	"cineticket/internal/data/cache"
	"cineticket/internal/data/entity"
	"cineticket/internal/data/repository"
	"cineticket/internal/dto/request"
	"cineticket/internal/dto/response"
	"cineticket/pkg/database"
	"cineticket/pkg/events"
	"cineticket/pkg/storage"
	"cineticket/pkg/telemetry"
	"cineticket/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type BookingService interface {
	// Client endpoints
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetMyBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetMyTicket(ctx context.Context, userID, ticketID uuid.UUID) (*response.TicketResponse, error)

	// Shared
	GetSeatAvailability(ctx context.Context, showTimeID uuid.UUID) (*response.SeatAvailabilityResponse, error)

	// Admin endpoints
	ListByShowTime(ctx context.Context, showTimeID uuid.UUID) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	UseTicket(ctx context.Context, ticketID uuid.UUID) (*response.TicketResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	images    *imageResolver
	seatCache cache.SeatMapCache
	publisher events.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, images *imageResolver, seatCache cache.SeatMapCache, publisher events.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		images:    images,
		seatCache: seatCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the seats, settles a simulated payment and returns
// the paid booking. Every database write happens in one transaction.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "booking.create",
		attribute.String("user_id", userID.String()),
		attribute.String("show_time_id", req.ShowTimeID),
		attribute.Int("seat_count", len(req.SeatIDs)),
	)
	defer span.End()

	resp, err := s.createBooking(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("booking_id", resp.ID))
	return resp, nil
}

func (s *bookingService) createBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	showTimeID, err := uuid.Parse(req.ShowTimeID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid show_time_id")
	}
	seatIDs, err := utils.ParseUUIDs(req.SeatIDs)
	if err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}

	var (
		booking *entity.Booking
		tickets []*entity.Ticket
		payment *entity.Payment
		labels  map[uuid.UUID]string
	)

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		client, err := clientByUser(ctx, s.repo, userID)
		if err != nil {
			return err
		}

		// row lock serializes concurrent bookings of one showtime
		showTime, err := s.repo.ShowTime.FindByIDForUpdate(ctx, showTimeID)
		if err != nil {
			return err
		}
		if showTime == nil {
			return newError(ErrNotFound, "showtime %s not found", showTimeID)
		}

		hall, err := s.repo.Hall.FindByID(ctx, showTime.HallID)
		if err != nil {
			return err
		}
		if hall == nil {
			return newError(ErrNotFound, "hall %s not found", showTime.HallID)
		}

		seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
		if err != nil {
			return err
		}
		if len(seats) != len(seatIDs) {
			return newError(ErrNotFound, "one or more seats not found")
		}

		labels = make(map[uuid.UUID]string, len(seats))
		for _, seat := range seats {
			if seat.HallID != hall.ID {
				return newError(ErrInvalidOperation, "seat %s does not belong to hall %s", seat.Label, hall.Name)
			}
			labels[seat.ID] = seat.Label
		}

		taken, err := s.repo.Ticket.FindByShowTimeAndSeats(ctx, showTime.ID, seatIDs)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return newError(ErrConflict, "seat %s is already booked", labels[taken[0].SeatID])
		}

		now := time.Now()
		booking = &entity.Booking{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			ClientID:     client.ID,
			ShowTimeID:   showTime.ID,
			TotalPrice:   showTime.BasePrice * float64(len(seats)),
			Status:       entity.BookingStatusPending,
		}
		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			return err
		}

		tickets = make([]*entity.Ticket, len(seatIDs))
		for i, seatID := range seatIDs {
			tickets[i] = &entity.Ticket{
				BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				BookingID:    booking.ID,
				ShowTimeID:   showTime.ID,
				SeatID:       seatID,
				Price:        showTime.BasePrice,
				Status:       entity.TicketStatusReserved,
			}
		}
		if err := s.repo.Ticket.CreateBatch(ctx, tickets); err != nil {
			if database.IsUniqueViolation(err) {
				return newError(ErrConflict, "one or more seats are already booked")
			}
			return err
		}

		for _, ticket := range tickets {
			if object, ok := s.uploadQR(ctx, ticket); ok {
				if err := s.repo.Ticket.UpdateQRCode(ctx, ticket.ID, object); err != nil {
					return err
				}
				ticket.QRCode = &object
			}
		}

		payment = &entity.Payment{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			BookingID:    booking.ID,
			Amount:       booking.TotalPrice,
			Status:       entity.PaymentStatusPending,
			Method:       entity.PaymentMethodSimulated,
		}
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}

		transactionID := utils.GenerateTransactionID()
		paidAt := time.Now()
		if err := s.repo.Payment.MarkPaid(ctx, payment.ID, transactionID, paidAt); err != nil {
			return err
		}
		payment.Status = entity.PaymentStatusPaid
		payment.TransactionID = &transactionID
		payment.PaidAt = &paidAt

		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusPaid); err != nil {
			return err
		}
		if err := s.repo.Ticket.UpdateStatusByBookingID(ctx, booking.ID, entity.TicketStatusPaid); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusPaid
		for _, ticket := range tickets {
			ticket.Status = entity.TicketStatusPaid
		}

		return nil
	})
	if err != nil {
		s.log.Warn("Booking failed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("show_time_id", showTimeID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("show_time_id", booking.ShowTimeID.String()),
		zap.Int("seat_count", len(tickets)),
		zap.Float64("total_price", booking.TotalPrice),
	)

	s.afterCommit(ctx, booking, tickets, labels)

	resp := s.toResponse(ctx, booking, tickets, labels, payment)
	return &resp, nil
}

// uploadQR stores a PNG of the ticket id; failures leave the ticket without a QR code.
func (s *bookingService) uploadQR(ctx context.Context, ticket *entity.Ticket) (string, bool) {
	if s.images.storage == nil {
		return "", false
	}

	png, err := storage.GenerateQR(ticket.ID.String())
	if err != nil {
		s.log.Warn("QR generation failed", zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		return "", false
	}

	object := storage.TicketQRObject(ticket.ID.String())
	if err := s.images.storage.UploadBytes(ctx, png, object, "image/png", s.images.ticketBucket); err != nil {
		s.log.Warn("QR upload failed", zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		return "", false
	}
	return object, true
}

func (s *bookingService) afterCommit(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket, labels map[uuid.UUID]string) {
	if err := s.seatCache.Invalidate(ctx, booking.ShowTimeID); err != nil {
		s.log.Warn("Seat map invalidation failed", zap.Error(err), zap.String("show_time_id", booking.ShowTimeID.String()))
	}

	event := events.BookingPaid{
		EventType:  events.EventBookingPaid,
		BookingID:  booking.ID.String(),
		ClientID:   booking.ClientID.String(),
		ShowTimeID: booking.ShowTimeID.String(),
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	for _, ticket := range tickets {
		event.TicketIDs = append(event.TicketIDs, ticket.ID.String())
		event.SeatLabels = append(event.SeatLabels, labels[ticket.SeatID])
	}
	if err := s.publisher.Publish(ctx, booking.ShowTimeID.String(), event); err != nil {
		s.log.Warn("Publish booking event failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}
}

func (s *bookingService) GetSeatAvailability(ctx context.Context, showTimeID uuid.UUID) (*response.SeatAvailabilityResponse, error) {
	showTime, err := s.repo.ShowTime.FindByID(ctx, showTimeID)
	if err != nil {
		return nil, err
	}
	if showTime == nil {
		return nil, newError(ErrNotFound, "showtime %s not found", showTimeID)
	}

	hall, err := s.repo.Hall.FindByID(ctx, showTime.HallID)
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, newError(ErrNotFound, "hall %s not found", showTime.HallID)
	}

	seats, ok := s.seatCache.Get(ctx, showTime.ID)
	if !ok {
		// the version must be read before the tickets
		version, versionOK := s.seatCache.Version(ctx, showTime.ID)
		if seats, err = s.seatMap(ctx, showTime); err != nil {
			return nil, err
		}
		if versionOK {
			s.seatCache.Set(ctx, showTime.ID, version, seats)
		}
	}

	resp := response.SeatAvailabilityToResponse(showTime, hall, seats)
	return &resp, nil
}

// seatMap joins the hall's seats with the showtime's tickets, ordered by row then column.
func (s *bookingService) seatMap(ctx context.Context, showTime *entity.ShowTime) ([]entity.SeatAvailability, error) {
	seats, err := s.repo.Seat.FindByHallID(ctx, showTime.HallID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.repo.Ticket.FindByShowTimeID(ctx, showTime.ID)
	if err != nil {
		return nil, err
	}

	bySeat := make(map[uuid.UUID]*entity.Ticket, len(tickets))
	for _, t := range tickets {
		bySeat[t.SeatID] = t
	}

	result := make([]entity.SeatAvailability, len(seats))
	for i, seat := range seats {
		result[i] = entity.SeatAvailability{Seat: *seat}
		if t, ok := bySeat[seat.ID]; ok {
			id, status := t.ID, t.Status
			result[i].IsTaken = true
			result[i].TicketID = &id
			result[i].TicketStatus = &status
		}
	}
	return result, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByClientID(ctx, client.ID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get client bookings",
			zap.Error(err),
			zap.String("client_id", client.ID.String()),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get client bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByClientID(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("count client bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := s.detail(ctx, booking)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, req.Page, limit, total), nil
}

func (s *bookingService) GetMyBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// another client's booking is reported as missing
	if booking.ClientID != client.ID {
		return nil, newError(ErrNotFound, "booking %s not found", bookingID)
	}

	return s.detail(ctx, booking)
}

func (s *bookingService) GetMyTicket(ctx context.Context, userID, ticketID uuid.UUID) (*response.TicketResponse, error) {
	client, err := clientByUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	booking, err := s.repo.Booking.FindByID(ctx, ticket.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.ClientID != client.ID {
		return nil, newError(ErrNotFound, "ticket %s not found", ticketID)
	}

	return s.ticketResponse(ctx, ticket)
}

func (s *bookingService) ListByShowTime(ctx context.Context, showTimeID uuid.UUID) ([]response.BookingResponse, error) {
	showTime, err := s.repo.ShowTime.FindByID(ctx, showTimeID)
	if err != nil {
		return nil, err
	}
	if showTime == nil {
		return nil, newError(ErrNotFound, "showtime %s not found", showTimeID)
	}

	bookings, err := s.repo.Booking.FindByShowTimeID(ctx, showTime.ID)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := s.detail(ctx, booking)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, booking)
}

// UseTicket admits a paid ticket at the door. Only paid tickets can be used.
func (s *bookingService) UseTicket(ctx context.Context, ticketID uuid.UUID) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != entity.TicketStatusPaid {
		return nil, newError(ErrInvalidOperation, "ticket %s is %s, only paid tickets can be used", ticket.ID, ticket.Status)
	}

	// a concurrent scan may have admitted it since the read
	marked, err := s.repo.Ticket.MarkUsed(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, newError(ErrInvalidOperation, "ticket %s was already used", ticket.ID)
	}
	ticket.Status = entity.TicketStatusUsed

	if err := s.seatCache.Invalidate(ctx, ticket.ShowTimeID); err != nil {
		s.log.Warn("Seat map invalidation failed", zap.Error(err), zap.String("show_time_id", ticket.ShowTimeID.String()))
	}

	s.log.Info("Ticket used", zap.String("ticket_id", ticket.ID.String()))
	return s.ticketResponse(ctx, ticket)
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "booking %s not found", id)
	}
	return booking, nil
}

func (s *bookingService) findTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, newError(ErrNotFound, "ticket %s not found", id)
	}
	return ticket, nil
}

// detail loads tickets, seat labels and payment of a stored booking
func (s *bookingService) detail(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	tickets, err := s.repo.Ticket.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	labels, err := s.seatLabels(ctx, tickets)
	if err != nil {
		return nil, err
	}
	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, booking, tickets, labels, payment)
	return &resp, nil
}

func (s *bookingService) ticketResponse(ctx context.Context, ticket *entity.Ticket) (*response.TicketResponse, error) {
	labels, err := s.seatLabels(ctx, []*entity.Ticket{ticket})
	if err != nil {
		return nil, err
	}
	resp := response.TicketToResponse(ticket, labels[ticket.SeatID], s.images.ticketURL(ctx, ticket.QRCode))
	return &resp, nil
}

func (s *bookingService) seatLabels(ctx context.Context, tickets []*entity.Ticket) (map[uuid.UUID]string, error) {
	labels := make(map[uuid.UUID]string, len(tickets))
	if len(tickets) == 0 {
		return labels, nil
	}

	ids := make([]uuid.UUID, len(tickets))
	for i, t := range tickets {
		ids[i] = t.SeatID
	}
	seats, err := s.repo.Seat.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, seat := range seats {
		labels[seat.ID] = seat.Label
	}
	return labels, nil
}

func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket, labels map[uuid.UUID]string, payment *entity.Payment) response.BookingResponse {
	resp := response.BookingToResponse(booking)
	resp.Tickets = make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp.Tickets[i] = response.TicketToResponse(ticket, labels[ticket.SeatID], s.images.ticketURL(ctx, ticket.QRCode))
	}
	resp.Payment = response.PaymentToResponse(payment)
	return resp
}
