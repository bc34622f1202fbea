package request

type WatchlistRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
}
