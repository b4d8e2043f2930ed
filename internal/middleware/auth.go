package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-mindster/internal/auth"
)

// TokenVerifier checks a session token.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// NewAuthMiddleware requires "Authorization: Bearer <token>" and stores the verified
// identity in the request context. Failures are answered with a 401 JSON body.
func NewAuthMiddleware(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Debug("request without bearer token", "path", r.URL.Path)
				unauthorized(w, "User not authenticated")
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("invalid bearer token", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
