package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

const PaymentMethodSimulated = "simulated"

type Payment struct {
	BaseNoDelete
	BookingID     uuid.UUID     `db:"booking_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	Method        string        `db:"method"`
	TransactionID *string       `db:"transaction_id"`
	PaidAt        *time.Time    `db:"paid_at"`
}
