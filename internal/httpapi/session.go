package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// sessionCookieName carries the opaque server-issued session identifier.
const sessionCookieName = "chatd_session"

type sessionCtxKey struct{}

// sessionMiddleware ensures every request carries a session id: an existing
// cookie is reused, otherwise a fresh id is issued and set on the response.
// The id is opaque to the client; all conversation state stays server-side.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromRequest returns the session id installed by sessionMiddleware.
func sessionIDFromRequest(r *http.Request) string {
	if id, ok := r.Context().Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
