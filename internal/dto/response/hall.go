package response

import "cineticket/internal/data/entity"

type HallResponse struct {
	ID        string `json:"id"`
	TheatreID string `json:"theatre_id"`
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	Capacity  int    `json:"capacity"`
}

type HallDetailResponse struct {
	HallResponse
	Seats []SeatResponse `json:"seats"`
}

type SeatResponse struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Label  string `json:"label"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:        hall.ID.String(),
		TheatreID: hall.TheatreID.String(),
		Name:      hall.Name,
		Rows:      hall.Rows,
		Columns:   hall.Columns,
		Capacity:  hall.Capacity(),
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID.String(),
		Row:    seat.RowNumber,
		Column: seat.ColumnNumber,
		Label:  seat.Label,
	}
}
