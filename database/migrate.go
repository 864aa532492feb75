// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"faithhub/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.AchievementEvent{},
		&models.UserSpiritualAchievements{},
		&models.Course{},
		&models.CourseCompletion{},
		&models.PrayerRequest{},
		&models.Church{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the auto-migration does not cover
func createIndexes() {
	db := GetDB()

	// Ledger reads: per-user recency and course dedup lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_events_user_time ON achievement_events(user_id, occurred_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_events_course ON achievement_events((event_data->>'course_id')) WHERE event_type = 'BIBLE_SCHOLAR_COMPLETED'")

	// Leaderboard: score ordering within an optional rank filter
	db.Exec("CREATE INDEX IF NOT EXISTS idx_spiritual_score ON user_spiritual_achievements(spiritual_score DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_spiritual_rank_score ON user_spiritual_achievements(current_spiritual_rank, spiritual_score DESC)")

	// Directory search
	db.Exec("CREATE INDEX IF NOT EXISTS idx_churches_city ON churches(city)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_prayer_requests_created ON prayer_requests(created_at DESC)")
}
