package store

import (
	"strings"

	"github.com/martin7tsang/student-management-system/models"
)

func validateStudent(s *models.Student) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(s.StudentID) == "" {
		errs["student_id"] = "student id is required"
	}
	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "name is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ListStudents returns one page of students plus the unpaginated total.
// A non-empty search term matches name or student id, case-insensitively.
func (st *Store) ListStudents(page int, search string) ([]models.Student, int64, error) {
	page = normPage(page)

	tx := st.db.Model(&models.Student{})
	if q := strings.TrimSpace(search); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR student_id ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, wrap(err)
	}
	var items []models.Student
	err := tx.Order("id ASC").
		Limit(PageSizeStudents).
		Offset((page - 1) * PageSizeStudents).
		Find(&items).Error
	if err != nil {
		return nil, 0, wrap(err)
	}
	return items, total, nil
}

func (st *Store) GetStudent(id uint) (*models.Student, error) {
	var s models.Student
	if err := st.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, wrap(err)
	}
	return &s, nil
}

func (st *Store) CreateStudent(s *models.Student) error {
	if errs := validateStudent(s); errs != nil {
		return errs
	}
	return wrap(st.db.Create(s).Error)
}

func (st *Store) UpdateStudent(id uint, in *models.Student) (*models.Student, error) {
	existing, err := st.GetStudent(id)
	if err != nil {
		return nil, err
	}
	if errs := validateStudent(in); errs != nil {
		return nil, errs
	}
	existing.StudentID = in.StudentID
	existing.Name = in.Name
	existing.Gender = in.Gender
	existing.Age = in.Age
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.Address = in.Address
	if err := st.db.Save(existing).Error; err != nil {
		return nil, wrap(err)
	}
	return existing, nil
}

// DeleteStudent removes the student; its grade rows go with it via the
// ON DELETE CASCADE constraint.
func (st *Store) DeleteStudent(id uint) error {
	s, err := st.GetStudent(id)
	if err != nil {
		return err
	}
	return wrap(st.db.Delete(s).Error)
}

// AllStudents is for form selects, not list views, so it skips pagination.
func (st *Store) AllStudents() ([]models.Student, error) {
	var items []models.Student
	if err := st.db.Order("student_id ASC").Find(&items).Error; err != nil {
		return nil, wrap(err)
	}
	return items, nil
}

func (st *Store) RecentStudents(n int) ([]models.Student, error) {
	var items []models.Student
	err := st.db.Order("created_at DESC, id DESC").Limit(n).Find(&items).Error
	if err != nil {
		return nil, wrap(err)
	}
	return items, nil
}
