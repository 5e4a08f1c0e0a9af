package dto

import (
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

type AccountAndPasswordDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// LoginResponse 登入回應，token 放在 Authorization: Bearer
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

func NewLoginResponse(s *model.Session) LoginResponse {
	return LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      UserDTO{UserID: s.UserID, Email: s.Email},
	}
}
