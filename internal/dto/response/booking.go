package response

import (
	"cineticket/internal/data/entity"
	"time"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	ClientID   string               `json:"client_id"`
	ShowTimeID string               `json:"show_time_id"`
	TotalPrice float64              `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	Tickets    []TicketResponse     `json:"tickets,omitempty"`
	Payment    *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type TicketResponse struct {
	ID         string              `json:"id"`
	BookingID  string              `json:"booking_id"`
	ShowTimeID string              `json:"show_time_id"`
	SeatID     string              `json:"seat_id"`
	SeatLabel  string              `json:"seat_label,omitempty"`
	Price      float64             `json:"price"`
	Status     entity.TicketStatus `json:"status"`
	// presigned URL, or the object name when presigning failed
	QRCode *string `json:"qr_code,omitempty"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	Amount        float64              `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	Method        string               `json:"method"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		ClientID:   booking.ClientID.String(),
		ShowTimeID: booking.ShowTimeID.String(),
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}

func TicketToResponse(ticket *entity.Ticket, seatLabel string, qrCode *string) TicketResponse {
	return TicketResponse{
		ID:         ticket.ID.String(),
		BookingID:  ticket.BookingID.String(),
		ShowTimeID: ticket.ShowTimeID.String(),
		SeatID:     ticket.SeatID.String(),
		SeatLabel:  seatLabel,
		Price:      ticket.Price,
		Status:     ticket.Status,
		QRCode:     qrCode,
	}
}

func PaymentToResponse(payment *entity.Payment) *PaymentResponse {
	if payment == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            payment.ID.String(),
		Amount:        payment.Amount,
		Status:        payment.Status,
		Method:        payment.Method,
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
	}
}
