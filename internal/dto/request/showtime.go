package request

// Times are RFC 3339, e.g. 2025-03-01T19:30:00+04:00
type ShowTimeRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid"`
	HallID    string  `json:"hall_id" validate:"required,uuid"`
	StartTime string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	BasePrice float64 `json:"base_price" validate:"gte=0"`
}

type ShowTimeUpdateRequest struct {
	StartTime *string  `json:"start_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   *string  `json:"end_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	BasePrice *float64 `json:"base_price,omitempty" validate:"omitempty,gte=0"`
}

// ShowTimeListQuery is parsed from query parameters; Date is 2006-01-02
type ShowTimeListQuery struct {
	PaginatedRequest
	MovieID *string `validate:"omitempty,uuid"`
	Date    *string `validate:"omitempty,datetime=2006-01-02"`
}
