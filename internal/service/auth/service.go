package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/hr-backend-go/internal/domain/auth"
	"github.com/workpulse/hr-backend-go/internal/domain/user"
	"github.com/workpulse/hr-backend-go/internal/pkg/jwt"
	"github.com/workpulse/hr-backend-go/internal/pkg/sessioncache"
)

type AuthServiceImpl struct {
	userRepo     user.Repository
	jwtService   jwt.Service
	sessionCache *sessioncache.Cache
}

func NewAuthService(userRepo user.Repository, jwtService jwt.Service, sessionCache *sessioncache.Cache) auth.Service {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionCache: sessionCache,
	}
}

// Login implements auth.Service. Lookup failures and bad passwords
// both map to ErrInvalidCredentials so the response never reveals
// which half was wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	usr, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !usr.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	sessionID := uuid.NewString()

	token, expiresAt, err := s.jwtService.GenerateAccessToken(usr.ID, usr.Email, usr.Role, sessionID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.sessionCache.Set(sessionID, usr)

	slog.Info("User logged in", "user_id", usr.ID, "session_id", sessionID)

	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		SessionID:            sessionID,
		UserID:               usr.ID,
		Email:                usr.Email,
		FullName:             usr.FullName,
		Role:                 string(usr.Role),
	}, nil
}

// Logout implements auth.Service. Dropping the cache entry is enough;
// the middleware falls back to the user store, which will refuse a
// deactivated account, and the token expires on its own.
func (s *AuthServiceImpl) Logout(_ context.Context, sessionID string) {
	s.sessionCache.Delete(sessionID)
	slog.Info("User logged out", "session_id", sessionID)
}
