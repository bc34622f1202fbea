package entity

import "github.com/google/uuid"

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "reserved"
	TicketStatusPaid     TicketStatus = "paid"
	TicketStatusUsed     TicketStatus = "used"
)

// Ticket reserves one seat for one showtime. ShowTimeID mirrors the
// booking's showtime so (show_time_id, seat_id) can carry a unique index.
type Ticket struct {
	BaseNoDelete
	BookingID  uuid.UUID    `db:"booking_id"`
	ShowTimeID uuid.UUID    `db:"show_time_id"`
	SeatID     uuid.UUID    `db:"seat_id"`
	Price      float64      `db:"price"`
	Status     TicketStatus `db:"status"`
	QRCode     *string      `db:"qr_code"` // object name in the ticket bucket
}
