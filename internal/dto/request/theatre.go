package request

type TheatreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Address string `json:"address" validate:"required,min=1"`
	City    string `json:"city" validate:"required,min=1,max=100"`
}

type TheatreUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=1"`
	City    *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
}
