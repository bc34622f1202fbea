package repository

import (
	"context"
	"fmt"

	"cineticket/internal/data/entity"
	"cineticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	CreateBatch(ctx context.Context, tickets []*entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error)
	FindByShowTimeID(ctx context.Context, showTimeID uuid.UUID) ([]*entity.Ticket, error)
	// FindByShowTimeAndSeats returns tickets already holding any of the seats
	FindByShowTimeAndSeats(ctx context.Context, showTimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Ticket, error)
	CountByShowTimeID(ctx context.Context, showTimeID uuid.UUID) (int64, error)
	// MarkUsed moves a paid ticket to used; false when it was not paid anymore
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateStatusByBookingID(ctx context.Context, bookingID uuid.UUID, status entity.TicketStatus) error
	UpdateQRCode(ctx context.Context, id uuid.UUID, qrCode string) error
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, booking_id, show_time_id, seat_id, price, status, qr_code, created_at, updated_at`

func scanTicket(row pgx.Row, ticket *entity.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.BookingID,
		&ticket.ShowTimeID,
		&ticket.SeatID,
		&ticket.Price,
		&ticket.Status,
		&ticket.QRCode,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

// ticketsPerInsert keeps one INSERT well under the 65535 bind parameter limit.
const ticketsPerInsert = 1000

// CreateBatch fails with a unique violation when a seat is already ticketed
// for the show time.
func (r *ticketRepository) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	for start := 0; start < len(tickets); start += ticketsPerInsert {
		end := min(start+ticketsPerInsert, len(tickets))
		query, args := ticketInsert(tickets[start:end])

		if _, err := r.db.Exec(ctx, query, args...); err != nil {
			r.log.Error("Failed to create batch tickets",
				zap.Error(err),
				zap.Int("count", len(tickets)),
			)
			return fmt.Errorf("create batch tickets: %w", err)
		}
	}

	return nil
}

func ticketInsert(tickets []*entity.Ticket) (string, []any) {
	query := `INSERT INTO tickets (id, booking_id, show_time_id, seat_id, price, status, qr_code, created_at, updated_at) VALUES `
	args := make([]any, 0, len(tickets)*9)

	for i, t := range tickets {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9)

		args = append(args,
			t.ID,
			t.BookingID,
			t.ShowTimeID,
			t.SeatID,
			t.Price,
			t.Status,
			t.QRCode,
			t.CreatedAt,
			t.UpdatedAt,
		)
	}
	return query, args
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	var ticket entity.Ticket
	err := scanTicket(r.db.QueryRow(ctx, query, id), &ticket)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket %s: %w", id, err)
	}

	return &ticket, nil
}

func (r *ticketRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE booking_id = $1 ORDER BY created_at, id`
	return r.findMany(ctx, "booking", query, bookingID)
}

func (r *ticketRepository) FindByShowTimeID(ctx context.Context, showTimeID uuid.UUID) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE show_time_id = $1`
	return r.findMany(ctx, "show time", query, showTimeID)
}

func (r *ticketRepository) FindByShowTimeAndSeats(ctx context.Context, showTimeID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Ticket, error) {
	if len(seatIDs) == 0 {
		return []*entity.Ticket{}, nil
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE show_time_id = $1 AND seat_id = ANY($2)`
	return r.findMany(ctx, "show time seats", query, showTimeID, seatIDs)
}

func (r *ticketRepository) findMany(ctx context.Context, scope, query string, args ...any) ([]*entity.Ticket, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find tickets", zap.Error(err), zap.String("scope", scope))
		return nil, fmt.Errorf("find tickets by %s: %w", scope, err)
	}
	defer rows.Close()

	tickets := []*entity.Ticket{}
	for rows.Next() {
		var ticket entity.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) CountByShowTimeID(ctx context.Context, showTimeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE show_time_id = $1`, showTimeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by show time",
			zap.Error(err),
			zap.String("show_time_id", showTimeID.String()),
		)
		return 0, fmt.Errorf("count tickets for show time %s: %w", showTimeID, err)
	}
	return count, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	tag, err := r.db.Exec(ctx, query, entity.TicketStatusUsed, id, entity.TicketStatusPaid)
	if err != nil {
		r.log.Error("Failed to mark ticket used",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return false, fmt.Errorf("mark ticket %s used: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ticketRepository) UpdateStatusByBookingID(ctx context.Context, bookingID uuid.UUID, status entity.TicketStatus) error {
	query := `UPDATE tickets SET status = $1, updated_at = NOW() WHERE booking_id = $2`

	if _, err := r.db.Exec(ctx, query, status, bookingID); err != nil {
		r.log.Error("Failed to update ticket status by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update tickets for booking %s: %w", bookingID, err)
	}
	return nil
}

func (r *ticketRepository) UpdateQRCode(ctx context.Context, id uuid.UUID, qrCode string) error {
	query := `UPDATE tickets SET qr_code = $1, updated_at = NOW() WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, qrCode, id); err != nil {
		r.log.Error("Failed to update ticket QR code",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return fmt.Errorf("update ticket %s qr code: %w", id, err)
	}
	return nil
}
