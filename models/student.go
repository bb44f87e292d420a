package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	StudentID string    `gorm:"size:20;uniqueIndex;not null" json:"student_id"` // enrollment number shown in lists
	Name      string    `gorm:"size:100;not null"            json:"name"`
	Gender    string    `gorm:"size:10"                      json:"gender"`
	Age       int       `json:"age"`
	Email     string    `gorm:"size:120"                     json:"email"`
	Phone     string    `gorm:"size:20"                      json:"phone"`
	Address   string    `gorm:"size:200"                     json:"address"`
	CreatedAt time.Time `json:"created_at"`

	// Deleting a student removes its grade rows at the database level.
	Grades []Grade `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"grades,omitempty"`
}
