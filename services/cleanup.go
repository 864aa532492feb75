// services/cleanup.go - Background cleanup of stale guest accounts
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"faithhub/database"
	"faithhub/models"
)

// CleanupService purges stale guest accounts on a timer. Guests with any
// accepted achievement event are kept; the ledger is never touched.
type CleanupService struct {
	interval time.Duration
	maxAge   time.Duration
	stop     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup service.
// Disabled when GUEST_CLEANUP_ENABLED=false.
func InitCleanupService() {
	if os.Getenv("GUEST_CLEANUP_ENABLED") == "false" {
		log.Println("Guest cleanup disabled")
		return
	}

	maxAgeDays := 30
	if v := os.Getenv("GUEST_CLEANUP_MAX_AGE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAgeDays = n
		}
	}

	cleanupService = &CleanupService{
		interval: 6 * time.Hour,
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		stop:     make(chan struct{}),
	}
	cleanupService.Start()
}

// GetCleanupService returns the initialized cleanup service, or nil when
// cleanup is disabled.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the background worker.
func (s *CleanupService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.CleanupStaleGuests(); err != nil {
					log.Printf("guest cleanup failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the worker down.
func (s *CleanupService) Stop() {
	close(s.stop)
}

// CleanupStaleGuests deletes guest accounts older than the configured age
// that never recorded an achievement.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	cutoff := time.Now().Add(-s.maxAge)

	result := db.Where(
		"is_guest = ? AND created_at < ? AND id NOT IN (SELECT DISTINCT user_id FROM achievement_events)",
		true, cutoff,
	).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("✅ Cleaned up %d stale guest accounts", result.RowsAffected)
	}
	return nil
}
