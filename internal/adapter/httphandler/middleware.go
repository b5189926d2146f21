package httphandler

import (
	"net/http"
	"strings"

	"github.com/toybox/storefront/internal/core/port"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// RequireAdmin rejects requests without a valid admin session token.
func RequireAdmin(gate port.AdminGate, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing admin token", http.StatusUnauthorized)
			return
		}

		if err := gate.VerifyToken(token); err != nil {
			http.Error(w, "invalid admin token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
