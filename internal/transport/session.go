package transport

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "draft_session"

// sessionKey returns the client's draft session key, minting and setting a
// cookie when none exists yet. Two tabs sharing the cookie share one draft;
// the last commit wins, which matches the single-storage-key behavior the
// admin UI has always had.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	key := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}
