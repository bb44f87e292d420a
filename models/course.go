package models

import "time"

type Course struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	CourseCode  string    `gorm:"size:20;uniqueIndex;not null" json:"course_code"`
	Name        string    `gorm:"size:100;not null"            json:"name"`
	Description string    `gorm:"type:text"                    json:"description"`
	Credits     int       `gorm:"not null;default:3"           json:"credits"`
	Teacher     string    `gorm:"size:100"                     json:"teacher"`
	CreatedAt   time.Time `json:"created_at"`

	Grades []Grade `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"grades,omitempty"`
}
