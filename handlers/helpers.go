package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/auth"
	"github.com/martin7tsang/student-management-system/store"
)

// atoiOr converts s to int, falling back to def on empty or bad input.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pageParam(c echo.Context) int {
	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	return page
}

// uintQuery reads a positive integer query parameter; empty, malformed, or
// non-positive values all mean "absent" (0).
func uintQuery(c echo.Context, name string) uint {
	n := atoiOr(c.QueryParam(name), 0)
	if n < 1 {
		return 0
	}
	return uint(n)
}

func uintParam(c echo.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

/* ===== Flash messages ===== */

// Flash is a one-shot notification surviving exactly one redirect.
// Level matches the stylesheet classes: success | danger | info.
type Flash struct {
	Level   string
	Message string
}

const flashCookie = "flash"

func setFlash(c echo.Context, level, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash, if any.
func popFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(raw, "|")
	if !ok {
		return &Flash{Level: "info", Message: raw}
	}
	return &Flash{Level: level, Message: message}
}

/* ===== View rendering ===== */

// render injects the ambient view state (current user, pending flash) and
// hands the view model to the template renderer.
func render(c echo.Context, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		if f := popFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	if u := auth.CurrentUser(c); u != nil {
		data["User"] = u
	}
	return c.Render(http.StatusOK, name, data)
}

/* ===== Pagination view model ===== */

type Pagination struct {
	Page       int
	TotalPages int
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

func paginate(page int, total int64, size int) Pagination {
	tp := store.TotalPages(total, size)
	return Pagination{
		Page:       page,
		TotalPages: tp,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < tp,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
}
