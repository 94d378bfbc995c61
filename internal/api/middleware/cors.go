package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type CORSMode string

const (
	CORSAllowList  CORSMode = "allowlist"
	CORSPermissive CORSMode = "permissive"
)

const MessageOriginNotAllowed = "Origin not allowed by CORS."

type CORSPolicy struct {
	Mode           CORSMode
	AllowedOrigins []string
}

// CORS wraps next with the policy. In allow-list mode a request that names a
// non-listed Origin is rejected with 403 before it reaches next. Requests
// without an Origin header are not cross-origin and always pass.
func CORS(policy CORSPolicy, logger *zerolog.Logger) func(http.Handler) http.Handler {
	var c *cors.Cors

	switch policy.Mode {
	case CORSPermissive:
		c = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		})
	default:
		c = cors.New(cors.Options{
			AllowedOrigins:       policy.AllowedOrigins,
			AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:       []string{"Content-Type", "Authorization", HeaderRequestID},
			ExposedHeaders:       []string{HeaderRequestID},
			AllowCredentials:     true,
			OptionsSuccessStatus: http.StatusOK,
		})
	}

	return func(next http.Handler) http.Handler {
		handler := c.Handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !c.OriginAllowed(r) {
				logger.Warn().
					Str("origin", origin).
					Str("path", r.URL.Path).
					Msg("CORS rejected origin")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(ErrorResponse{Error: MessageOriginNotAllowed})
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
