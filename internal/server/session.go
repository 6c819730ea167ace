package server

import (
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the view session id.
const SessionCookie = "docview_session"

// session returns the caller's session id, issuing a new one when the
// request has none or carries a malformed one.
func session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
