package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const authRealm = `Bearer realm="mapvista"`

// BearerAuthMiddleware guards the JSON API with static API keys. The scheme
// name is matched case-insensitively. Preflight requests pass so that CORS
// can answer them. With no non-empty key it is a pass-through.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	var validKeys [][]byte
	for _, k := range apiKeys {
		if k != "" {
			validKeys = append(validKeys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := bearerToken(r.Header.Get("Authorization"))
			if msg == "" && !matchesAny(token, validKeys) {
				msg = "invalid api key"
			}
			if msg != "" {
				w.Header().Set("WWW-Authenticate", authRealm)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token or returns a client-facing reason.
func bearerToken(header string) ([]byte, string) {
	if header == "" {
		return nil, "missing authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, "authorization header must use Bearer scheme"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, "empty bearer token"
	}
	return []byte(token), ""
}

func matchesAny(token []byte, keys [][]byte) bool {
	for _, k := range keys {
		if subtle.ConstantTimeCompare(token, k) == 1 {
			return true
		}
	}
	return false
}
