package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/api/middleware"
	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type AuthHandler struct {
	sessions service.ISessionService
}

func NewAuthHandler(sessions service.ISessionService) *AuthHandler {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	return &AuthHandler{sessions: sessions}
}

// Register 建立收銀員帳號
// POST /auth/register
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.AccountAndPasswordDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	user, err := a.sessions.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, dto.UserDTO{UserID: user.UserID, Email: user.Email})
}

// Login 登入並建立收銀台
// POST /auth/login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.AccountAndPasswordDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	session, err := a.sessions.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, dto.NewLoginResponse(session))
}

// POST /auth/logout
func (a *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.SignOut(r.Context(), middleware.GetToken(r.Context())); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nil)
}

// GET /auth/me
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.ErrorJSON(w, service.ErrUnauthenticated)
		return
	}
	response.SuccessJSON(w, dto.UserDTO{UserID: identity.UserID, Email: identity.Email})
}
