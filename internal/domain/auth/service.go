package auth

import "context"

// Service defines the minimal authentication surface the attendance
// platform exposes. Everything downstream trusts the identity the
// middleware resolves from the issued token.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, sessionID string)
}
