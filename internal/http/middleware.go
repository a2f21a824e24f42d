package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionMiddleware identifies the caller. There is no real authentication:
// the session id comes from the X-Session-ID header, or a fresh one is
// minted and echoed back so the client can keep it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		w.Header().Set("X-Session-ID", sessionID)
		ctx := context.WithValue(r.Context(), "session_id", sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value("session_id").(string); ok {
		return sessionID
	}
	return ""
}
