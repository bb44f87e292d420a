package store

import (
	"strings"

	"github.com/martin7tsang/student-management-system/models"
)

func validateCourse(c *models.Course) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(c.CourseCode) == "" {
		errs["course_code"] = "course code is required"
	}
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "name is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (st *Store) ListCourses(page int) ([]models.Course, int64, error) {
	page = normPage(page)

	var total int64
	if err := st.db.Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, wrap(err)
	}
	var items []models.Course
	err := st.db.Order("id ASC").
		Limit(PageSizeCourses).
		Offset((page - 1) * PageSizeCourses).
		Find(&items).Error
	if err != nil {
		return nil, 0, wrap(err)
	}
	return items, total, nil
}

func (st *Store) GetCourse(id uint) (*models.Course, error) {
	var c models.Course
	if err := st.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, wrap(err)
	}
	return &c, nil
}

func (st *Store) CreateCourse(c *models.Course) error {
	if errs := validateCourse(c); errs != nil {
		return errs
	}
	return wrap(st.db.Create(c).Error)
}

func (st *Store) UpdateCourse(id uint, in *models.Course) (*models.Course, error) {
	existing, err := st.GetCourse(id)
	if err != nil {
		return nil, err
	}
	if errs := validateCourse(in); errs != nil {
		return nil, errs
	}
	existing.CourseCode = in.CourseCode
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Credits = in.Credits
	existing.Teacher = in.Teacher
	if err := st.db.Save(existing).Error; err != nil {
		return nil, wrap(err)
	}
	return existing, nil
}

func (st *Store) DeleteCourse(id uint) error {
	c, err := st.GetCourse(id)
	if err != nil {
		return err
	}
	return wrap(st.db.Delete(c).Error)
}

func (st *Store) AllCourses() ([]models.Course, error) {
	var items []models.Course
	if err := st.db.Order("course_code ASC").Find(&items).Error; err != nil {
		return nil, wrap(err)
	}
	return items, nil
}
