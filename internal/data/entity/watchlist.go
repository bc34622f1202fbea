package entity

import "github.com/google/uuid"

type WatchlistItem struct {
	BaseSimple
	ClientID uuid.UUID `db:"client_id"`
	MovieID  uuid.UUID `db:"movie_id"`
}
