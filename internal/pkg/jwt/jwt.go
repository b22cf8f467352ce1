package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/workpulse/hr-backend-go/internal/domain/user"
)

type Service interface {
	// GenerateAccessToken issues an access token carrying the user
	// identity and the session ID the cache layer keys on.
	GenerateAccessToken(userID string, email string, role user.Role, sessionID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	// PurgeRevoked drops revocation entries whose token has expired on
	// its own, returning the number removed.
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role, sessionID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":    userID,
		"email":      email,
		"role":       string(role),
		"session_id": sessionID,
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked implements Service. A revocation entry recorded at time
// R covers a token that expires no later than R plus one access-token
// lifetime, so entries older than that are safe to drop.
func (j *JWTService) PurgeRevoked(now time.Time) int {
	lifetime, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		lifetime = time.Hour
	}
	cutoff := now.Add(-lifetime - 30*time.Second).Unix()

	j.mu.Lock()
	defer j.mu.Unlock()

	removed := 0
	for token, revokedAt := range j.revokedTokens {
		if revokedAt < cutoff {
			delete(j.revokedTokens, token)
			removed++
		}
	}
	return removed
}
