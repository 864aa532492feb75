// models/church.go
package models

import "time"

// Church is a directory entry for a member congregation.
type Church struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;index" json:"name"`
	Pastor  string `json:"pastor"`
	City    string `gorm:"index" json:"city"`
	Country string `gorm:"index" json:"country"`
	Address string `json:"address"`
	Website string `json:"website"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
