package response

import (
	"cineticket/internal/data/entity"
	"time"
)

type ShowTimeResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	HallID     string    `json:"hall_id"`
	HallName   string    `json:"hall_name,omitempty"`
	TheatreID  string    `json:"theatre_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	BasePrice  float64   `json:"base_price"`
}

type SeatAvailabilityResponse struct {
	ShowTimeID string               `json:"show_time_id"`
	HallID     string               `json:"hall_id"`
	Rows       int                  `json:"rows"`
	Columns    int                  `json:"columns"`
	Available  int                  `json:"available"`
	Seats      []SeatStatusResponse `json:"seats"`
}

type SeatStatusResponse struct {
	SeatResponse
	IsTaken      bool                 `json:"is_taken"`
	TicketID     *string              `json:"ticket_id,omitempty"`
	TicketStatus *entity.TicketStatus `json:"ticket_status,omitempty"`
}

func ShowTimeToResponse(st *entity.ShowTime) ShowTimeResponse {
	return ShowTimeResponse{
		ID:        st.ID.String(),
		MovieID:   st.MovieID.String(),
		HallID:    st.HallID.String(),
		StartTime: st.StartTime,
		EndTime:   st.EndTime,
		BasePrice: st.BasePrice,
	}
}

func SeatAvailabilityToResponse(showTime *entity.ShowTime, hall *entity.Hall, seats []entity.SeatAvailability) SeatAvailabilityResponse {
	resp := SeatAvailabilityResponse{
		ShowTimeID: showTime.ID.String(),
		HallID:     hall.ID.String(),
		Rows:       hall.Rows,
		Columns:    hall.Columns,
		Seats:      make([]SeatStatusResponse, 0, len(seats)),
	}

	for i := range seats {
		s := SeatStatusResponse{
			SeatResponse: SeatToResponse(&seats[i].Seat),
			IsTaken:      seats[i].IsTaken,
			TicketStatus: seats[i].TicketStatus,
		}
		if seats[i].TicketID != nil {
			id := seats[i].TicketID.String()
			s.TicketID = &id
		}
		if !s.IsTaken {
			resp.Available++
		}
		resp.Seats = append(resp.Seats, s)
	}

	return resp
}
