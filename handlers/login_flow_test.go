package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/martin7tsang/student-management-system/auth"
	"github.com/martin7tsang/student-management-system/database"
	"github.com/martin7tsang/student-management-system/models"
	"github.com/martin7tsang/student-management-system/routes"
	"github.com/martin7tsang/student-management-system/store"
)

// recordingRenderer captures what a handler asked to render instead of
// executing real templates.
type recordingRenderer struct {
	name string
	data map[string]any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.name = name
	r.data, _ = data.(map[string]any)
	_, err := fmt.Fprintf(w, "rendered %s", name)
	return err
}

// testApp wires a full echo instance against the TEST_DB_URL database with
// the admin user seeded. Tests skip when the variable is unset.
func testApp(t *testing.T) (*echo.Echo, *recordingRenderer, *gorm.DB) {
	t.Helper()
	_ = godotenv.Load("../.env")
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set; skipping database tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Student{}, &models.Course{}, &models.Grade{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := db.Exec("TRUNCATE grades, students, courses, users RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
	if err := database.EnsureAdmin(db); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	rec := &recordingRenderer{}
	e := echo.New()
	e.Renderer = rec
	routes.Register(e, store.New(db), auth.NewService(db, nil, "test-secret"))
	return e, rec, db
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range res.Cookies() {
		if ck.Name == auth.CookieName && ck.Value != "" && ck.MaxAge >= 0 {
			return ck
		}
	}
	return nil
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	e, _, _ := testApp(t)

	rec := postForm(e, "/login", url.Values{
		"username": {database.AdminUsername},
		"password": {database.AdminPassword},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	ck := sessionCookie(t, rec.Result())
	if ck == nil {
		t.Fatalf("expected %s cookie to be set", auth.CookieName)
	}
	if !ck.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestLoginFailureRerendersWithoutSession(t *testing.T) {
	e, rr, _ := testApp(t)

	rec := postForm(e, "/login", url.Values{
		"username": {database.AdminUsername},
		"password": {"wrong-password"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", rec.Code)
	}
	if rr.name != "login.html" {
		t.Fatalf("expected login.html, got %q", rr.name)
	}
	if rr.data["Username"] != database.AdminUsername {
		t.Fatalf("expected typed username to be retained, got %v", rr.data["Username"])
	}
	if rr.data["Flash"] == nil {
		t.Fatalf("expected an error flash on failed login")
	}
	if ck := sessionCookie(t, rec.Result()); ck != nil {
		t.Fatalf("no session cookie may be set on failed login, got %v", ck)
	}
}

// Logging in with the right session should grant access to guarded pages,
// and the edit views must expose the same keys whether the page is a fresh
// GET or a failed submit.
func TestStudentEditViewModelKeys(t *testing.T) {
	e, rr, db := testApp(t)

	st := models.Student{StudentID: "S001", Name: "Fahad Ali"}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student failed: %v", err)
	}

	login := postForm(e, "/login", url.Values{
		"username": {database.AdminUsername},
		"password": {database.AdminPassword},
	})
	session := sessionCookie(t, login.Result())
	if session == nil {
		t.Fatalf("login did not produce a session cookie")
	}

	// Fresh GET of the edit form.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/students/edit/%d", st.ID), nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rr.name != "edit_student.html" {
		t.Fatalf("expected edit_student.html, got %q", rr.name)
	}
	if rr.data["ID"] != st.ID {
		t.Fatalf("expected ID %d in view data, got %v", st.ID, rr.data["ID"])
	}
	if _, ok := rr.data["Form"]; !ok {
		t.Fatalf("expected Form in view data")
	}

	// Failed submit of the same form re-renders with the same keys.
	rec = postForm(e, fmt.Sprintf("/students/edit/%d", st.ID), url.Values{
		"student_id": {"S001"},
		"name":       {"Fahad Ali"},
		"age":        {"not-a-number"},
	}, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", rec.Code)
	}
	if rr.name != "edit_student.html" {
		t.Fatalf("expected edit_student.html, got %q", rr.name)
	}
	if rr.data["ID"] != st.ID {
		t.Fatalf("expected ID %d after failed submit, got %v", st.ID, rr.data["ID"])
	}
	if _, ok := rr.data["Form"]; !ok {
		t.Fatalf("expected Form after failed submit")
	}
}
