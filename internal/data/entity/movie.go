package entity

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	DurationMinutes int       `db:"duration_minutes"`
	ReleaseDate     time.Time `db:"release_date"`
	Rating          float64   `db:"rating"`
	PosterObject    *string   `db:"poster_object"`   // object name in the poster bucket
	BackdropObject  *string   `db:"backdrop_object"` // object name in the poster bucket
	Translations    []MovieTranslation
}

type MovieTranslation struct {
	ID           uuid.UUID `db:"id"`
	MovieID      uuid.UUID `db:"movie_id"`
	LanguageCode string    `db:"language_code"`
	Title        string    `db:"title"`
	Description  *string   `db:"description"`
}
