// models/prayer.go
package models

import "time"

// PrayerRequest is a member-submitted request visible to the congregation.
type PrayerRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Body        string `gorm:"not null" json:"body"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	IsAnswered  bool   `gorm:"default:false;index" json:"is_answered"`
	PrayerCount int    `gorm:"default:0" json:"prayer_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
