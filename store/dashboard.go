package store

import (
	"github.com/martin7tsang/student-management-system/models"
)

type Counts struct {
	Students int64
	Courses  int64
	Grades   int64
}

func (st *Store) DashboardCounts() (Counts, error) {
	var c Counts
	if err := st.db.Model(&models.Student{}).Count(&c.Students).Error; err != nil {
		return c, wrap(err)
	}
	if err := st.db.Model(&models.Course{}).Count(&c.Courses).Error; err != nil {
		return c, wrap(err)
	}
	if err := st.db.Model(&models.Grade{}).Count(&c.Grades).Error; err != nil {
		return c, wrap(err)
	}
	return c, nil
}
