package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/hr-backend-go/internal/domain/auth"
	"github.com/workpulse/hr-backend-go/internal/handler/http/response"
	"github.com/workpulse/hr-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}

// Logout implements AuthHandler. Runs behind the auth middleware, so
// the token in the header is already verified.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if sessionID, ok := claims["session_id"].(string); ok && sessionID != "" {
		h.authService.Logout(r.Context(), sessionID)
	}

	if raw := jwtauth.TokenFromHeader(r); raw != "" {
		h.jwtService.RevokeToken(raw)
	}

	response.SuccessWithMessage(w, "Logout successful", nil)
}
