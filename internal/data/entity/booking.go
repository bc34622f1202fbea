package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
	BookingStatusPaid    BookingStatus = "paid"
)

type Booking struct {
	BaseNoDelete
	ClientID   uuid.UUID     `db:"client_id"`
	ShowTimeID uuid.UUID     `db:"show_time_id"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
