package http

import (
	"net/http"
	"time"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// CookieManager writes and clears the two auth cookies. Both are HttpOnly
// and SameSite=Strict; Secure follows the deployment.
type CookieManager struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieManager(secure bool, accessTTL, refreshTTL time.Duration) *CookieManager {
	return &CookieManager{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (c *CookieManager) setAccess(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(c.accessTTL.Seconds()),
	})
}

func (c *CookieManager) setRefresh(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(c.refreshTTL.Seconds()),
	})
}

func (c *CookieManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessCookieName, Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: refreshCookieName, Path: "/", MaxAge: -1, HttpOnly: true})
}
