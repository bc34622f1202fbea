package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShowTime struct {
	BaseNoDelete
	MovieID   uuid.UUID `db:"movie_id"`
	HallID    uuid.UUID `db:"hall_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	BasePrice float64   `db:"base_price"`
}
