package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"journal/internal/auth"
	"journal/internal/httputil"
)

// AuthConfig configures AuthMiddleware
type AuthConfig struct {
	Verifier auth.JWTVerifier

	// PublicPrefixes are path prefixes served without a token
	PublicPrefixes []string

	// DevUserID, when set, is used for requests without a bearer token.
	// Never set in production.
	DevUserID string

	Logger *slog.Logger
}

// AuthMiddleware verifies the bearer token and stores the user on the request
func AuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Pre-flight requests carry no credentials
			if r.Method == http.MethodOptions || isPublic(r.URL.Path, cfg.PublicPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				if cfg.DevUserID != "" {
					next.ServeHTTP(w, httputil.WithUserID(r, cfg.DevUserID))
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if cfg.Verifier == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "token verification unavailable")
				return
			}

			claims, err := cfg.Verifier.VerifyToken(token)
			if err != nil {
				cfg.Logger.Debug("rejected token", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, claims.GetUserID(), claims.Email))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}
