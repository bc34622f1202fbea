package entity

import "github.com/google/uuid"

// Client is the end-user profile attached to a user account.
type Client struct {
	BaseNoDelete
	UserID  uuid.UUID `db:"user_id"`
	Name    string    `db:"name"`
	Surname string    `db:"surname"`
	Phone   *string   `db:"phone"`
}
