package web

import (
	"chat-relay/auth"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Authenticate injects the token claims into the request context.
// The "token" query parameter stands in for the Bearer header, links and
// image tags cannot set headers.
func Authenticate(issuer *auth.TokenIssuer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				token = r.URL.Query().Get("token")
				ok = token != ""
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "authorization token is missing")
				return
			}
			claims, err := issuer.Validate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
