package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

const (
	AuthCookieName  = "pb_auth"
	GuestCookieName = "guest_id"

	guestKey = "guestId"
)

// AddCookieSessionMiddleware Sets and Reads session data into a secure cookie
func AddCookieSessionMiddleware(app core.App) {
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(loadAuthContextFromCookie(app))
		se.Router.BindFunc(ensureGuestCookie)
		return se.Next()
	})

	// fires for every auth collection
	app.OnRecordAuthRequest().
		BindFunc(func(e *core.RecordAuthRequestEvent) error {

			if e.Record.IsSuperuser() {
				return e.Next()
			}

			e.SetCookie(&http.Cookie{
				Name:     AuthCookieName,
				Value:    e.Token,
				Path:     "/",
				Secure:   true,
				HttpOnly: true,
			})
			return e.Next()
		})
}

func loadAuthContextFromCookie(
	app core.App,
) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tokenCookie, err := e.Request.Cookie(AuthCookieName)
		if err != nil || tokenCookie.Value == "" {
			return e.Next() // no token cookie
		}

		token := tokenCookie.Value

		record, err := app.FindAuthRecordByToken(token, core.TokenTypeAuth)
		if err == nil && record != nil {
			e.Auth = record
		}

		return e.Next()
	}
}

// ensureGuestCookie gives anonymous visitors a stable id to own a session
func ensureGuestCookie(e *core.RequestEvent) error {
	if e.Auth != nil {
		return e.Next()
	}

	if cookie, err := e.Request.Cookie(GuestCookieName); err == nil && cookie.Value != "" {
		e.Set(guestKey, cookie.Value)
		return e.Next()
	}

	id := uuid.NewString()
	e.SetCookie(&http.Cookie{
		Name:     GuestCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	e.Set(guestKey, id)
	return e.Next()
}

// PlayerID identifies who owns the request's session: the auth record id when
// logged in, otherwise the guest cookie.
func PlayerID(e *core.RequestEvent) string {
	if e.Auth != nil {
		return e.Auth.Id
	}
	if id, ok := e.Get(guestKey).(string); ok && id != "" {
		return "guest:" + id
	}
	return ""
}

func Logout(e *core.RequestEvent) error {
	for _, name := range []string{AuthCookieName, GuestCookieName} {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
		})
	}
	return nil
}
