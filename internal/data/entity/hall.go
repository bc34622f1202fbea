package entity

import "github.com/google/uuid"

type Hall struct {
	BaseNoDelete
	TheatreID uuid.UUID `db:"theatre_id"`
	Name      string    `db:"name"`
	Rows      int       `db:"rows"`
	Columns   int       `db:"columns"`
}

func (h *Hall) Capacity() int {
	return h.Rows * h.Columns
}
