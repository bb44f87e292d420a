package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/models"
	"github.com/martin7tsang/student-management-system/store"
)

type CourseHandler struct {
	store *store.Store
}

func NewCourseHandler(st *store.Store) *CourseHandler {
	return &CourseHandler{store: st}
}

type courseForm struct {
	CourseCode  string
	Name        string
	Description string
	Credits     string
	Teacher     string
}

func readCourseForm(c echo.Context) courseForm {
	trim := strings.TrimSpace
	return courseForm{
		CourseCode:  trim(c.FormValue("course_code")),
		Name:        trim(c.FormValue("name")),
		Description: trim(c.FormValue("description")),
		Credits:     trim(c.FormValue("credits")),
		Teacher:     trim(c.FormValue("teacher")),
	}
}

func (f courseForm) toModel() (*models.Course, store.ValidationErrors) {
	errs := store.ValidationErrors{}
	credits := 3
	if f.Credits != "" {
		n, err := strconv.Atoi(f.Credits)
		if err != nil || n < 0 {
			errs["credits"] = "credits must be a non-negative number"
		} else {
			credits = n
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &models.Course{
		CourseCode:  f.CourseCode,
		Name:        f.Name,
		Description: f.Description,
		Credits:     credits,
		Teacher:     f.Teacher,
	}, nil
}

// GET /courses?page=
func (h *CourseHandler) List(c echo.Context) error {
	page := pageParam(c)
	items, total, err := h.store.ListCourses(page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "courses.html", map[string]any{
		"Courses":    items,
		"Pagination": paginate(page, total, store.PageSizeCourses),
	})
}

// GET /courses/add
func (h *CourseHandler) AddForm(c echo.Context) error {
	return render(c, "add_course.html", map[string]any{
		"Form": courseForm{Credits: "3"},
	})
}

// POST /courses/add
func (h *CourseHandler) Add(c echo.Context) error {
	form := readCourseForm(c)

	rerender := func(msg string, fieldErrs store.ValidationErrors) error {
		return render(c, "add_course.html", map[string]any{
			"Flash":  &Flash{Level: "danger", Message: msg},
			"Form":   form,
			"Errors": fieldErrs,
		})
	}

	course, verrs := form.toModel()
	if verrs != nil {
		return rerender("Please correct the highlighted fields", verrs)
	}

	err := h.store.CreateCourse(course)
	var fieldErrs store.ValidationErrors
	switch {
	case err == nil:
		setFlash(c, "success", "Course added")
		return c.Redirect(http.StatusFound, "/courses")
	case errors.As(err, &fieldErrs):
		return rerender("Please correct the highlighted fields", fieldErrs)
	case errors.Is(err, store.ErrConflict):
		return rerender("A course with this course code already exists", nil)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /courses/edit/:id
func (h *CourseHandler) EditForm(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	course, err := h.store.GetCourse(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "edit_course.html", map[string]any{
		"ID": id,
		"Form": courseForm{
			CourseCode:  course.CourseCode,
			Name:        course.Name,
			Description: course.Description,
			Credits:     strconv.Itoa(course.Credits),
			Teacher:     course.Teacher,
		},
	})
}

// POST /courses/edit/:id
func (h *CourseHandler) Edit(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	form := readCourseForm(c)

	rerender := func(msg string, fieldErrs store.ValidationErrors) error {
		return render(c, "edit_course.html", map[string]any{
			"Flash":  &Flash{Level: "danger", Message: msg},
			"Form":   form,
			"Errors": fieldErrs,
			"ID":     id,
		})
	}

	in, verrs := form.toModel()
	if verrs != nil {
		return rerender("Please correct the highlighted fields", verrs)
	}

	_, err := h.store.UpdateCourse(id, in)
	var fieldErrs store.ValidationErrors
	switch {
	case err == nil:
		setFlash(c, "success", "Course updated")
		return c.Redirect(http.StatusFound, "/courses")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	case errors.As(err, &fieldErrs):
		return rerender("Please correct the highlighted fields", fieldErrs)
	case errors.Is(err, store.ErrConflict):
		return rerender("A course with this course code already exists", nil)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /courses/delete/:id
func (h *CourseHandler) Delete(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	err := h.store.DeleteCourse(id)
	switch {
	case err == nil:
		setFlash(c, "success", "Course deleted")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/courses")
}
