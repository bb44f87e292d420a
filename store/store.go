package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors handlers branch on with errors.Is. Everything a write can
// fail with maps to one of these or to ValidationErrors; nothing else crosses
// the handler boundary.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("constraint violation")
)

// ValidationErrors maps field name to a human-readable problem. It is an
// error so Create/Update can return it through the normal path.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

const (
	PageSizeStudents = 10
	PageSizeCourses  = 10
	PageSizeGrades   = 15
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// normPage coerces the 1-indexed page parameter. Pages past the end simply
// produce an empty result from OFFSET, which is the wanted behavior.
func normPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func TotalPages(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// wrap classifies a gorm/postgres error into the store taxonomy.
// 23505 is unique_violation, 23503 foreign_key_violation.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w", ErrConflict)
	}
	return err
}
