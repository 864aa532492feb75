// models/spiritual.go
package models

import "time"

// UserSpiritualAchievements is the per-user projection over the achievement
// ledger. It is created lazily on a user's first accepted event and updated
// in the same transaction as every ledger append. Replaying all accepted
// events for a user reproduces this row exactly.
type UserSpiritualAchievements struct {
	UserID               uint          `gorm:"primaryKey" json:"user_id"`
	CurrentSpiritualRank SpiritualRank `gorm:"not null;default:BELIEVER;index" json:"current_spiritual_rank"`
	TotalAchievements    int           `gorm:"not null;default:0" json:"total_achievements"`
	SpiritualScore       int           `gorm:"not null;default:0;index" json:"spiritual_score"`

	// Per-category counters, each fed by exactly one event type.
	PrayerSessionsLed     int `gorm:"not null;default:0" json:"prayer_sessions_led"`
	BibleStudiesCompleted int `gorm:"not null;default:0" json:"bible_studies_completed"`
	SoulsWon              int `gorm:"not null;default:0" json:"souls_won"`
	MiraclesDocumented    int `gorm:"not null;default:0" json:"miracles_documented"`
	DisciplesMentored     int `gorm:"not null;default:0" json:"disciples_mentored"`
	ChurchesPlanted       int `gorm:"not null;default:0" json:"churches_planted"`
	TestimoniesShared     int `gorm:"not null;default:0" json:"testimonies_shared"`
	MinistryHoursServed   int `gorm:"not null;default:0" json:"ministry_hours_served"`

	LastAchievementAt *time.Time `json:"last_achievement_at"`
	RankAchievedAt    *time.Time `json:"rank_achieved_at"`
}
