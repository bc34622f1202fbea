package entity

import "github.com/google/uuid"

type Seat struct {
	ID           uuid.UUID `db:"id" json:"id"`
	HallID       uuid.UUID `db:"hall_id" json:"hall_id"`
	RowNumber    int       `db:"row_number" json:"row_number"`       // 1, 2, 3, etc.
	ColumnNumber int       `db:"column_number" json:"column_number"` // 1, 2, 3, etc.
	Label        string    `db:"label" json:"label"`                 // A1, A2, B1, etc.
}

// SeatAvailability is a seat as seen from one show time.
type SeatAvailability struct {
	Seat         Seat          `json:"seat"`
	IsTaken      bool          `json:"is_taken"`
	TicketID     *uuid.UUID    `json:"ticket_id,omitempty"`
	TicketStatus *TicketStatus `json:"ticket_status,omitempty"`
}
