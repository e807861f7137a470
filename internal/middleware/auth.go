package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/sumcheck/sumcheck/internal/models"
)

var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// Auth requires one of apiKeys in headerName (or the api_key cookie).
// Keys are compared by SHA-256 digest in constant time.
func Auth(apiKeys []string, headerName string) func(http.Handler) http.Handler {
	digests := make([][32]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			digests = append(digests, sha256.Sum256([]byte(k)))
		}
	}

	valid := func(key string) bool {
		d := sha256.Sum256([]byte(key))
		ok := 0
		for _, want := range digests {
			ok |= subtle.ConstantTimeCompare(d[:], want[:])
		}
		return ok == 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(headerName)
			if key == "" {
				if c, err := r.Cookie("api_key"); err == nil {
					key = c.Value
				}
			}

			if key == "" {
				models.WriteError(w, http.StatusUnauthorized, "API key required")
				return
			}
			if !valid(key) {
				models.WriteError(w, http.StatusForbidden, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
