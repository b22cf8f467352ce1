package middleware

import (
	"net/http"

	"github.com/workpulse/hr-backend-go/internal/handler/http/response"
)

// AdminOnly gates privileged routes. It must run after AuthRequired.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usr, ok := CurrentUser(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}

		if !usr.IsAdmin() {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
