package response

import (
	"cineticket/internal/data/entity"
	"time"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ClientToResponse(client *entity.Client, email string) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		UserID:    client.UserID.String(),
		Email:     email,
		Name:      client.Name,
		Surname:   client.Surname,
		Phone:     client.Phone,
		CreatedAt: client.CreatedAt,
	}
}
