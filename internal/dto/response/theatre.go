package response

import (
	"cineticket/internal/data/entity"
	"time"
)

type TheatreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

type TheatreDetailResponse struct {
	TheatreResponse
	Halls []HallResponse `json:"halls"`
}

func TheatreToResponse(theatre *entity.Theatre) TheatreResponse {
	return TheatreResponse{
		ID:        theatre.ID.String(),
		Name:      theatre.Name,
		Address:   theatre.Address,
		City:      theatre.City,
		CreatedAt: theatre.CreatedAt,
	}
}
