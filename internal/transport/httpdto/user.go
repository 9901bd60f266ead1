package httpdto

import (
	"time"

	"livepoll/internal/domain/user"
)

type RegisterRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.DisplayName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
