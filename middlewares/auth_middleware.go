package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/auth"
)

// RequireAuth guards every route except login. A missing, invalid, or
// expired session sends the browser back to the login page; the stale
// cookie is cleared on the way out.
func RequireAuth(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			userID, err := svc.ParseToken(cookie.Value)
			if err != nil {
				auth.ClearSessionCookie(c)
				return c.Redirect(http.StatusFound, "/login")
			}

			u, err := svc.ResolveUser(c.Request().Context(), userID)
			if err != nil {
				// Token was valid but the account is gone.
				auth.ClearSessionCookie(c)
				return c.Redirect(http.StatusFound, "/login")
			}

			auth.SetCurrentUser(c, u)
			return next(c)
		}
	}
}
