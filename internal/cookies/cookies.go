package cookies

import (
	"net/http"
	"time"
)

const (
	AccessName  = "thinklet_accessToken"
	RefreshName = "thinklet_refreshToken"
)

// Create builds a credential cookie. SameSite=None because the client
// is served from a different origin than the API.
func Create(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// Delete must carry the same scope and security attributes as Create,
// otherwise browsers silently keep the original cookie.
func Delete(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
