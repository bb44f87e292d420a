package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/store"
)

type DashboardHandler struct {
	store *store.Store
}

func NewDashboardHandler(st *store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// GET /
func (h *DashboardHandler) Index(c echo.Context) error {
	counts, err := h.store.DashboardCounts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	recent, err := h.store.RecentStudents(5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "index.html", map[string]any{
		"TotalStudents":  counts.Students,
		"TotalCourses":   counts.Courses,
		"TotalGrades":    counts.Grades,
		"RecentStudents": recent,
	})
}
