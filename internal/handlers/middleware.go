package handlers

import (
	"net/http"
	"strings"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
)

type MiddlewareProvider struct {
	SecretOption string
	AllowOrigin  string
	tokens       primary.TokenService
}

func NewMiddlewareProvider(jwtCfg *config.JwtConfig, httpCfg *config.HttpConfig) *MiddlewareProvider {
	return &MiddlewareProvider{
		SecretOption: jwtCfg.Secret,
		AllowOrigin:  httpCfg.CorsAllowedOrigin,
		tokens:       crypto.NewJWTService(jwtCfg),
	}
}

// AuthEnabled reports whether submission routes require a bearer token
func (m *MiddlewareProvider) AuthEnabled() bool {
	return m.SecretOption != ""
}

// JWTMiddleware accepts HS256 bearer tokens signed with the configured secret.
// Without a secret it lets every request through.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	if !m.AuthEnabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ResponseError(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if _, err := m.tokens.VerifyTokenHMAC(r.Context(), tokenString); err != nil {
			ResponseError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware adds the CORS headers and answers preflight requests
func (m *MiddlewareProvider) CORSMiddleware(next http.Handler) http.Handler {
	origin := m.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
