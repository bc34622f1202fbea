package request

type MovieRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=1,max=999"`
	ReleaseDate     string   `json:"release_date" validate:"required,datetime=2006-01-02"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=10"`
	GenreIDs        []string `json:"genre_ids,omitempty" validate:"omitempty,unique,dive,uuid"`
}

type MovieUpdateRequest struct {
	Title           *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	ReleaseDate     *string   `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Rating          *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	GenreIDs        *[]string `json:"genre_ids,omitempty" validate:"omitempty,unique,dive,uuid"`
}

// MovieListQuery is parsed from query parameters
type MovieListQuery struct {
	PaginatedRequest
	GenreID *string `validate:"omitempty,uuid"`
	Lang    string
}
