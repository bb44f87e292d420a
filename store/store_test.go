package store

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/martin7tsang/student-management-system/models"
)

// testStore connects to the database named by TEST_DB_URL and starts from
// empty tables. Tests needing a database skip when the variable is unset.
func testStore(t *testing.T) *Store {
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
	return New(db)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{30, 15, 2},
		{31, 15, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestNormPage(t *testing.T) {
	if normPage(0) != 1 || normPage(-3) != 1 {
		t.Fatalf("expected non-positive pages to coerce to 1")
	}
	if normPage(7) != 7 {
		t.Fatalf("expected valid page to pass through")
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{"name": "name is required", "age": "bad"}
	if got := errs.Error(); got != "validation failed: age, name" {
		t.Fatalf("unexpected message: %q", got)
	}
}
