package models

import "time"

// Grade links a student to a course. One grade per (student, course) pair,
// enforced by the composite unique index.
type Grade struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"not null;uniqueIndex:uniq_student_course" json:"student_id"`
	CourseID  uint       `gorm:"not null;uniqueIndex:uniq_student_course" json:"course_id"`
	Score     *float64   `json:"score"`               // nullable until graded
	ExamDate  *time.Time `gorm:"type:date" json:"exam_date"`
	CreatedAt time.Time  `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Course  Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
