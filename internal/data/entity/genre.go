package entity

import "github.com/google/uuid"

type Genre struct {
	BaseNoDelete
	Name         string `db:"name"`
	Translations []GenreTranslation
}

type GenreTranslation struct {
	ID           uuid.UUID `db:"id"`
	GenreID      uuid.UUID `db:"genre_id"`
	LanguageCode string    `db:"language_code"`
	Name         string    `db:"name"`
}
