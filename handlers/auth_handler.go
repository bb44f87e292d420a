package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/auth"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// GET /login
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, "login.html", nil)
}

// POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	u, ok := h.svc.VerifyCredentials(username, password)
	if !ok {
		// One message for both unknown user and bad password.
		return render(c, "login.html", map[string]any{
			"Flash":    &Flash{Level: "danger", Message: "Invalid username or password"},
			"Username": username,
		})
	}

	token, err := h.svc.IssueToken(u)
	if err != nil {
		slog.Error("session token issue failed", "user_id", u.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	auth.SetSessionCookie(c, token)
	slog.Info("user logged in", "user_id", u.ID, "username", u.Username)

	setFlash(c, "success", "Logged in")
	return c.Redirect(http.StatusFound, "/")
}

// GET /logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if u := auth.CurrentUser(c); u != nil {
		h.svc.ForgetUser(c.Request().Context(), u.ID)
		slog.Info("user logged out", "user_id", u.ID)
	}
	auth.ClearSessionCookie(c)
	setFlash(c, "info", "Logged out")
	return c.Redirect(http.StatusFound, "/login")
}
