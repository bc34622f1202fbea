package response

import "time"

type MovieResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	ReleaseDate     string          `json:"release_date"`
	Rating          float64         `json:"rating"`
	PosterURL       *string         `json:"poster_url,omitempty"`
	BackdropURL     *string         `json:"backdrop_url,omitempty"`
	Genres          []GenreResponse `json:"genres"`
	CreatedAt       time.Time       `json:"created_at"`
}
