package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/hr-backend-go/internal/domain/auth"
	"github.com/workpulse/hr-backend-go/internal/domain/user"
	"github.com/workpulse/hr-backend-go/internal/handler/http/response"
	"github.com/workpulse/hr-backend-go/internal/pkg/jwt"
	"github.com/workpulse/hr-backend-go/internal/pkg/sessioncache"
)

type contextKey string

const userContextKey contextKey = "current_user"

// Auth resolves the authenticated user behind a verified token. The
// session cache answers repeat requests; a miss falls through to the
// user store and repopulates the cache.
type Auth struct {
	sessionCache *sessioncache.Cache
	userRepo     user.Repository
	jwtService   jwt.Service
}

func NewAuth(sessionCache *sessioncache.Cache, userRepo user.Repository, jwtService jwt.Service) *Auth {
	return &Auth{
		sessionCache: sessionCache,
		userRepo:     userRepo,
		jwtService:   jwtService,
	}
}

func (a *Auth) AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if raw := jwtauth.TokenFromHeader(r); raw != "" && a.jwtService.IsTokenRevoked(raw) {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		sessionID, _ := claims["session_id"].(string)

		usr, err := a.resolveUser(r.Context(), sessionID, userID)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, usr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) resolveUser(ctx context.Context, sessionID, userID string) (user.User, error) {
	if sessionID != "" {
		if cached, ok := a.sessionCache.Get(sessionID); ok {
			return cached, nil
		}
	}

	usr, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if !usr.IsActive {
		return user.User{}, user.ErrUserInactive
	}

	if sessionID != "" {
		a.sessionCache.Set(sessionID, usr)
	}

	return usr, nil
}

// CurrentUser returns the user the auth middleware resolved.
func CurrentUser(ctx context.Context) (user.User, bool) {
	usr, ok := ctx.Value(userContextKey).(user.User)
	return usr, ok
}
