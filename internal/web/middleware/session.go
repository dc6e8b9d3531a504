package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rfallows/campgrounds/internal/services/auth"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "session"

// SetSessionCookie writes the session token cookie
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session token cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session returns middleware that guarantees every request carries a
// live server-side session and a populated request scope: resolved
// identity (or nil for anonymous) plus any queued flash message.
// A missing or invalid token is replaced with a fresh anonymous session,
// never an error.
func Session(authService *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := &Scope{}

			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			session, identity, err := authService.Resolve(r.Context(), token)
			if err != nil {
				logger.Error("session resolve failed", slog.String("error", err.Error()))
			}

			if session == nil {
				session, err = authService.StartSession(r.Context())
				if err != nil {
					// session store unavailable; proceed with a detached
					// record so the request can still be served
					logger.Error("session create failed", slog.String("error", err.Error()))
					next.ServeHTTP(w, r.WithContext(withScope(r.Context(), scope)))
					return
				}
				SetSessionCookie(w, session.Token)
			}

			scope.Session = session
			scope.Identity = identity

			if flash, err := authService.PopFlash(r.Context(), session.Token); err == nil {
				scope.Flash = flash
			}

			next.ServeHTTP(w, r.WithContext(withScope(r.Context(), scope)))
		})
	}
}
