package request

type HallRequest struct {
	TheatreID string `json:"theatre_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Rows      int    `json:"rows" validate:"required,min=1,max=100"`
	Columns   int    `json:"columns" validate:"required,min=1,max=100"`
}

type HallUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
