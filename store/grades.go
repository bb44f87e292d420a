package store

import (
	"time"

	"github.com/martin7tsang/student-management-system/models"
)

func validateGrade(g *models.Grade) ValidationErrors {
	errs := ValidationErrors{}
	if g.StudentID == 0 {
		errs["student_id"] = "student is required"
	}
	if g.CourseID == 0 {
		errs["course_id"] = "course is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ListGrades returns one page of grades with student and course preloaded.
// studentID/courseID of zero mean "no filter"; both set means AND.
func (st *Store) ListGrades(page int, studentID, courseID uint) ([]models.Grade, int64, error) {
	page = normPage(page)

	tx := st.db.Model(&models.Grade{})
	if studentID != 0 {
		tx = tx.Where("student_id = ?", studentID)
	}
	if courseID != 0 {
		tx = tx.Where("course_id = ?", courseID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, wrap(err)
	}
	var items []models.Grade
	err := tx.Preload("Student").Preload("Course").
		Order("id ASC").
		Limit(PageSizeGrades).
		Offset((page - 1) * PageSizeGrades).
		Find(&items).Error
	if err != nil {
		return nil, 0, wrap(err)
	}
	return items, total, nil
}

func (st *Store) GetGrade(id uint) (*models.Grade, error) {
	var g models.Grade
	err := st.db.Preload("Student").Preload("Course").First(&g, "id = ?", id).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &g, nil
}

// CreateGrade inserts a grade row. A duplicate (student, course) pair or a
// dangling reference comes back as ErrConflict from the database constraints.
func (st *Store) CreateGrade(g *models.Grade) error {
	if errs := validateGrade(g); errs != nil {
		return errs
	}
	return wrap(st.db.Create(g).Error)
}

// UpdateGrade overwrites score and exam date only; the (student, course)
// pair of an existing grade is fixed.
func (st *Store) UpdateGrade(id uint, score *float64, examDate *time.Time) (*models.Grade, error) {
	var existing models.Grade
	if err := st.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, wrap(err)
	}
	existing.Score = score
	existing.ExamDate = examDate
	if err := st.db.Save(&existing).Error; err != nil {
		return nil, wrap(err)
	}
	return &existing, nil
}

func (st *Store) DeleteGrade(id uint) error {
	var g models.Grade
	if err := st.db.First(&g, "id = ?", id).Error; err != nil {
		return wrap(err)
	}
	return wrap(st.db.Delete(&g).Error)
}

// StudentGrades returns every grade of one student with the course loaded,
// for the per-student summary view.
func (st *Store) StudentGrades(studentID uint) ([]models.Grade, error) {
	var items []models.Grade
	err := st.db.Preload("Course").
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, wrap(err)
	}
	return items, nil
}

// averageScore is the arithmetic mean of the non-nil scores. Zero when there
// is nothing to average; the summary page shows 0 rather than an error for
// students with no graded work.
func averageScore(grades []models.Grade) float64 {
	var sum float64
	var n int
	for _, g := range grades {
		if g.Score != nil {
			sum += *g.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (st *Store) StudentAverageScore(studentID uint) (float64, error) {
	grades, err := st.StudentGrades(studentID)
	if err != nil {
		return 0, err
	}
	return averageScore(grades), nil
}
