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

type StudentHandler struct {
	store *store.Store
}

func NewStudentHandler(st *store.Store) *StudentHandler {
	return &StudentHandler{store: st}
}

// studentForm holds the raw form fields so a failed submit can re-render
// with everything the user typed still in place.
type studentForm struct {
	StudentID string
	Name      string
	Gender    string
	Age       string
	Email     string
	Phone     string
	Address   string
}

func readStudentForm(c echo.Context) studentForm {
	trim := strings.TrimSpace
	return studentForm{
		StudentID: trim(c.FormValue("student_id")),
		Name:      trim(c.FormValue("name")),
		Gender:    trim(c.FormValue("gender")),
		Age:       trim(c.FormValue("age")),
		Email:     trim(c.FormValue("email")),
		Phone:     trim(c.FormValue("phone")),
		Address:   trim(c.FormValue("address")),
	}
}

// toModel parses typed fields; bad input never reaches the store.
func (f studentForm) toModel() (*models.Student, store.ValidationErrors) {
	errs := store.ValidationErrors{}
	age := 0
	if f.Age != "" {
		n, err := strconv.Atoi(f.Age)
		if err != nil || n < 0 {
			errs["age"] = "age must be a non-negative number"
		} else {
			age = n
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &models.Student{
		StudentID: f.StudentID,
		Name:      f.Name,
		Gender:    f.Gender,
		Age:       age,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
	}, nil
}

// GET /students?page=&search=
func (h *StudentHandler) List(c echo.Context) error {
	page := pageParam(c)
	search := strings.TrimSpace(c.QueryParam("search"))

	items, total, err := h.store.ListStudents(page, search)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "students.html", map[string]any{
		"Students":   items,
		"Search":     search,
		"Pagination": paginate(page, total, store.PageSizeStudents),
	})
}

// GET /students/add
func (h *StudentHandler) AddForm(c echo.Context) error {
	return render(c, "add_student.html", map[string]any{
		"Form": studentForm{},
	})
}

// POST /students/add
func (h *StudentHandler) Add(c echo.Context) error {
	form := readStudentForm(c)

	rerender := func(msg string, fieldErrs store.ValidationErrors) error {
		return render(c, "add_student.html", map[string]any{
			"Flash":  &Flash{Level: "danger", Message: msg},
			"Form":   form,
			"Errors": fieldErrs,
		})
	}

	s, verrs := form.toModel()
	if verrs != nil {
		return rerender("Please correct the highlighted fields", verrs)
	}

	err := h.store.CreateStudent(s)
	var fieldErrs store.ValidationErrors
	switch {
	case err == nil:
		setFlash(c, "success", "Student added")
		return c.Redirect(http.StatusFound, "/students")
	case errors.As(err, &fieldErrs):
		return rerender("Please correct the highlighted fields", fieldErrs)
	case errors.Is(err, store.ErrConflict):
		return rerender("A student with this student ID already exists", nil)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /students/edit/:id
func (h *StudentHandler) EditForm(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	s, err := h.store.GetStudent(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "edit_student.html", map[string]any{
		"ID": id,
		"Form": studentForm{
			StudentID: s.StudentID,
			Name:      s.Name,
			Gender:    s.Gender,
			Age:       strconv.Itoa(s.Age),
			Email:     s.Email,
			Phone:     s.Phone,
			Address:   s.Address,
		},
	})
}

// POST /students/edit/:id
func (h *StudentHandler) Edit(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	form := readStudentForm(c)

	rerender := func(msg string, fieldErrs store.ValidationErrors) error {
		return render(c, "edit_student.html", map[string]any{
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

	_, err := h.store.UpdateStudent(id, in)
	var fieldErrs store.ValidationErrors
	switch {
	case err == nil:
		setFlash(c, "success", "Student updated")
		return c.Redirect(http.StatusFound, "/students")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	case errors.As(err, &fieldErrs):
		return rerender("Please correct the highlighted fields", fieldErrs)
	case errors.Is(err, store.ErrConflict):
		return rerender("A student with this student ID already exists", nil)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /students/delete/:id
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	err := h.store.DeleteStudent(id)
	switch {
	case err == nil:
		setFlash(c, "success", "Student deleted")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/students")
}

// GET /students/:id/grades
func (h *StudentHandler) Grades(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	s, err := h.store.GetStudent(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	grades, err := h.store.StudentGrades(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	avg, err := h.store.StudentAverageScore(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "student_grades.html", map[string]any{
		"Student":  s,
		"Grades":   grades,
		"AvgScore": avg,
	})
}
