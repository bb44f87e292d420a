package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/models"
)

const contextKey = "current_user"

// SetCurrentUser attaches the resolved user to the request context.
// Only the session guard should call this.
func SetCurrentUser(c echo.Context, u *models.User) {
	c.Set(contextKey, u)
}

// CurrentUser returns the authenticated user for this request, or nil on
// routes outside the guard.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(contextKey).(*models.User)
	return u
}

func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
