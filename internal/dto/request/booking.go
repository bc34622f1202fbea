package request

// MaxSeatsPerBooking mirrors the max tag on SeatIDs.
const MaxSeatsPerBooking = 100

type CreateBookingRequest struct {
	ShowTimeID string   `json:"show_time_id" validate:"required,uuid"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,max=100,unique,dive,uuid"`
}
