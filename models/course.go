// models/course.go
package models

import "time"

// Course is a catalog entry in the discipleship course library. The
// Bible-scholar validator cross-checks submitted course ids against this
// table.
type Course struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"` // Doctrine, Old Testament, New Testament, Ministry, Leadership
	Lessons     int    `gorm:"default:0" json:"lessons"`
	IsActive    bool   `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseCompletion records that a user finished a course. One row per
// (user, course) pair.
type CourseCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_course_completions_user_course" json:"user_id"`
	CourseID    string    `gorm:"not null;size:64;uniqueIndex:idx_course_completions_user_course" json:"course_id"`
	CompletedAt time.Time `json:"completed_at"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
