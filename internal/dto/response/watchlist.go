package response

import "time"

type WatchlistItemResponse struct {
	ID      string        `json:"id"`
	Movie   MovieResponse `json:"movie"`
	AddedAt time.Time     `json:"added_at"`
}
