package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/auth"
)

func guardedEcho(svc *auth.Service) *echo.Echo {
	e := echo.New()
	e.GET("/students", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireAuth(svc))
	return e
}

func TestRequireAuthNoCookieRedirects(t *testing.T) {
	e := guardedEcho(auth.NewService(nil, nil, "test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected no body on redirect, got %q", rec.Body.String())
	}
}

func TestRequireAuthBadTokenRedirectsAndClearsCookie(t *testing.T) {
	e := guardedEcho(auth.NewService(nil, nil, "test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.CookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected stale session cookie to be cleared")
	}
}
