package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/models"
	"github.com/martin7tsang/student-management-system/store"
)

type GradeHandler struct {
	store *store.Store
}

func NewGradeHandler(st *store.Store) *GradeHandler {
	return &GradeHandler{store: st}
}

type gradeForm struct {
	StudentID string
	CourseID  string
	Score     string
	ExamDate  string // YYYY-MM-DD or empty
}

func readGradeForm(c echo.Context) gradeForm {
	trim := strings.TrimSpace
	return gradeForm{
		StudentID: trim(c.FormValue("student_id")),
		CourseID:  trim(c.FormValue("course_id")),
		Score:     trim(c.FormValue("score")),
		ExamDate:  trim(c.FormValue("exam_date")),
	}
}

func parseScore(s string) (*float64, bool) {
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseExamDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func (f gradeForm) toModel() (*models.Grade, store.ValidationErrors) {
	errs := store.ValidationErrors{}

	sid, err := strconv.ParseUint(f.StudentID, 10, 32)
	if err != nil || sid == 0 {
		errs["student_id"] = "student is required"
	}
	cid, err := strconv.ParseUint(f.CourseID, 10, 32)
	if err != nil || cid == 0 {
		errs["course_id"] = "course is required"
	}
	score, ok := parseScore(f.Score)
	if !ok {
		errs["score"] = "score must be a number"
	}
	examDate, ok := parseExamDate(f.ExamDate)
	if !ok {
		errs["exam_date"] = "exam date must be YYYY-MM-DD"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &models.Grade{
		StudentID: uint(sid),
		CourseID:  uint(cid),
		Score:     score,
		ExamDate:  examDate,
	}, nil
}

// lookups loads the select-box options shared by the list filter and the
// add form.
func (h *GradeHandler) lookups() ([]models.Student, []models.Course, error) {
	students, err := h.store.AllStudents()
	if err != nil {
		return nil, nil, err
	}
	courses, err := h.store.AllCourses()
	if err != nil {
		return nil, nil, err
	}
	return students, courses, nil
}

// GET /grades?page=&student_id=&course_id=
func (h *GradeHandler) List(c echo.Context) error {
	page := pageParam(c)
	studentID := uintQuery(c, "student_id")
	courseID := uintQuery(c, "course_id")

	items, total, err := h.store.ListGrades(page, studentID, courseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	students, courses, err := h.lookups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "grades.html", map[string]any{
		"Grades":          items,
		"Students":        students,
		"Courses":         courses,
		"SelectedStudent": studentID,
		"SelectedCourse":  courseID,
		"Pagination":      paginate(page, total, store.PageSizeGrades),
	})
}

// GET /grades/add
func (h *GradeHandler) AddForm(c echo.Context) error {
	students, courses, err := h.lookups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return render(c, "add_grade.html", map[string]any{
		"Form":     gradeForm{},
		"Students": students,
		"Courses":  courses,
	})
}

// POST /grades/add
func (h *GradeHandler) Add(c echo.Context) error {
	form := readGradeForm(c)

	rerender := func(msg string, fieldErrs store.ValidationErrors) error {
		students, courses, err := h.lookups()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return render(c, "add_grade.html", map[string]any{
			"Flash":    &Flash{Level: "danger", Message: msg},
			"Form":     form,
			"Errors":   fieldErrs,
			"Students": students,
			"Courses":  courses,
		})
	}

	g, verrs := form.toModel()
	if verrs != nil {
		return rerender("Please correct the highlighted fields", verrs)
	}

	err := h.store.CreateGrade(g)
	var fieldErrs store.ValidationErrors
	switch {
	case err == nil:
		setFlash(c, "success", "Grade recorded")
		return c.Redirect(http.StatusFound, "/grades")
	case errors.As(err, &fieldErrs):
		return rerender("Please correct the highlighted fields", fieldErrs)
	case errors.Is(err, store.ErrConflict):
		return rerender("This student already has a grade for this course", nil)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /grades/edit/:id
func (h *GradeHandler) EditForm(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	g, err := h.store.GetGrade(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	form := gradeForm{
		StudentID: strconv.FormatUint(uint64(g.StudentID), 10),
		CourseID:  strconv.FormatUint(uint64(g.CourseID), 10),
	}
	if g.Score != nil {
		form.Score = strconv.FormatFloat(*g.Score, 'f', -1, 64)
	}
	if g.ExamDate != nil {
		form.ExamDate = g.ExamDate.Format("2006-01-02")
	}
	return render(c, "edit_grade.html", map[string]any{
		"Grade": g,
		"Form":  form,
	})
}

// POST /grades/edit/:id
// Only score and exam date are editable; the (student, course) pair is fixed.
func (h *GradeHandler) Edit(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	form := readGradeForm(c)

	rerender := func(fieldErrs store.ValidationErrors) error {
		g, err := h.store.GetGrade(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return render(c, "edit_grade.html", map[string]any{
			"Flash":  &Flash{Level: "danger", Message: "Please correct the highlighted fields"},
			"Grade":  g,
			"Form":   form,
			"Errors": fieldErrs,
		})
	}

	errs := store.ValidationErrors{}
	score, ok := parseScore(form.Score)
	if !ok {
		errs["score"] = "score must be a number"
	}
	examDate, ok := parseExamDate(form.ExamDate)
	if !ok {
		errs["exam_date"] = "exam date must be YYYY-MM-DD"
	}
	if len(errs) > 0 {
		return rerender(errs)
	}

	_, err := h.store.UpdateGrade(id, score, examDate)
	switch {
	case err == nil:
		setFlash(c, "success", "Grade updated")
		return c.Redirect(http.StatusFound, "/grades")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
}

// GET /grades/delete/:id
func (h *GradeHandler) Delete(c echo.Context) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	err := h.store.DeleteGrade(id)
	switch {
	case err == nil:
		setFlash(c, "success", "Grade deleted")
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/grades")
}
