package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func formContext(t *testing.T, path string, values url.Values) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestStudentFormToModel(t *testing.T) {
	c := formContext(t, "/students/add", url.Values{
		"student_id": {" S001 "},
		"name":       {"Li Wei"},
		"gender":     {"M"},
		"age":        {"20"},
		"email":      {"li@example.com"},
	})
	form := readStudentForm(c)
	if form.StudentID != "S001" {
		t.Fatalf("expected trimmed student id, got %q", form.StudentID)
	}

	s, errs := form.toModel()
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if s.Age != 20 || s.Name != "Li Wei" {
		t.Fatalf("unexpected model: %+v", s)
	}
}

func TestStudentFormBadAge(t *testing.T) {
	for _, age := range []string{"abc", "-1", "12.5"} {
		c := formContext(t, "/students/add", url.Values{
			"student_id": {"S001"},
			"name":       {"Li Wei"},
			"age":        {age},
		})
		_, errs := readStudentForm(c).toModel()
		if errs == nil {
			t.Fatalf("expected age %q to be rejected", age)
		}
		if _, ok := errs["age"]; !ok {
			t.Fatalf("expected age field error, got %v", errs)
		}
	}
}

func TestCourseFormDefaultsCredits(t *testing.T) {
	c := formContext(t, "/courses/add", url.Values{
		"course_code": {"C01"},
		"name":        {"Math"},
	})
	course, errs := readCourseForm(c).toModel()
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if course.Credits != 3 {
		t.Fatalf("expected default 3 credits, got %d", course.Credits)
	}
}

func TestGradeFormToModel(t *testing.T) {
	c := formContext(t, "/grades/add", url.Values{
		"student_id": {"1"},
		"course_id":  {"2"},
		"score":      {"88.5"},
		"exam_date":  {"2026-06-15"},
	})
	g, errs := readGradeForm(c).toModel()
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if g.StudentID != 1 || g.CourseID != 2 {
		t.Fatalf("unexpected references: %+v", g)
	}
	if g.Score == nil || *g.Score != 88.5 {
		t.Fatalf("unexpected score: %v", g.Score)
	}
	if g.ExamDate == nil || g.ExamDate.Format("2006-01-02") != "2026-06-15" {
		t.Fatalf("unexpected exam date: %v", g.ExamDate)
	}
}

func TestGradeFormOptionalFieldsEmpty(t *testing.T) {
	c := formContext(t, "/grades/add", url.Values{
		"student_id": {"1"},
		"course_id":  {"2"},
	})
	g, errs := readGradeForm(c).toModel()
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if g.Score != nil || g.ExamDate != nil {
		t.Fatalf("expected nil score and exam date, got %+v", g)
	}
}

func TestGradeFormRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		field  string
	}{
		{"missing student", url.Values{"course_id": {"2"}}, "student_id"},
		{"missing course", url.Values{"student_id": {"1"}}, "course_id"},
		{"bad score", url.Values{"student_id": {"1"}, "course_id": {"2"}, "score": {"high"}}, "score"},
		{"bad date", url.Values{"student_id": {"1"}, "course_id": {"2"}, "exam_date": {"15/06/2026"}}, "exam_date"},
	}
	for _, tc := range cases {
		c := formContext(t, "/grades/add", tc.values)
		_, errs := readGradeForm(c).toModel()
		if errs == nil {
			t.Fatalf("%s: expected validation errors", tc.name)
		}
		if _, ok := errs[tc.field]; !ok {
			t.Fatalf("%s: expected %s error, got %v", tc.name, tc.field, errs)
		}
	}
}
