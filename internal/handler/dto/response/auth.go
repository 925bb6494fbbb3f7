package response

import (
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

func FromUserView(view *queries.UserView) UserResponse {
	return UserResponse{
		ID:    view.ID,
		Email: view.Email,
		Role:  view.Role,
	}
}
