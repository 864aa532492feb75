// handlers/achievements.go - Spiritual achievement submission and queries
package handlers

import (
	"encoding/json"
	"log"

	"faithhub/database"
	"faithhub/middleware"
	"faithhub/models"
	"faithhub/services"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

var achievementService *services.AchievementService
var leaderboardCache *services.LeaderboardCache

// InitAchievementHandlers wires the achievement service once the database is
// up. Must be called from main before routes are served.
func InitAchievementHandlers() {
	leaderboardCache = services.NewLeaderboardCache()
	achievementService = services.NewAchievementService(database.GetDB(), leaderboardCache)
}

// GetAchievementService exposes the wired service to the admin handlers.
func GetAchievementService() *services.AchievementService {
	return achievementService
}

type SubmitEventRequest struct {
	EventType string          `json:"event_type" validate:"required"`
	EventData json.RawMessage `json:"event_data" validate:"required"`
}

// SubmitAchievementEvent validates a claim and, when valid, appends it to the
// ledger and updates the caller's aggregate in one transaction.
// POST /api/achievements/events
func SubmitAchievementEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req SubmitEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationErrors(err)})
	}

	result, vres, err := achievementService.Submit(c.Context(), userID, models.AchievementEventType(req.EventType), req.EventData)
	if err != nil {
		log.Printf("achievement submit failed for user %d (%s): %v", userID, req.EventType, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record achievement"})
	}

	if result == nil {
		// Rejected: every violated rule is surfaced, nothing was persisted.
		return c.Status(422).JSON(fiber.Map{
			"success":    false,
			"error":      "Achievement validation failed",
			"validation": vres,
		})
	}

	response := fiber.Map{
		"success":                 true,
		"event_id":                result.EventID,
		"achievement_unlocked":    result.AchievementUnlocked,
		"spiritual_points_earned": result.PointsEarned,
		"warnings":                result.Warnings,
		"spiritual_score":         result.Aggregate.SpiritualScore,
		"current_rank":            result.Aggregate.CurrentSpiritualRank,
	}
	if result.NewRank != nil {
		response["new_rank"] = *result.NewRank
	}

	return c.Status(201).JSON(response)
}

// ValidateAchievementEvent runs the rule set as a preview. Persists nothing;
// identical input always yields an identical result.
// POST /api/achievements/validate
func ValidateAchievementEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req SubmitEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationErrors(err)})
	}

	vres, err := achievementService.Validate(c.Context(), userID, models.AchievementEventType(req.EventType), req.EventData)
	if err != nil {
		log.Printf("achievement validate failed for user %d (%s): %v", userID, req.EventType, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to validate achievement"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"validation": vres,
	})
}

// GetUserAchievements returns the caller's aggregate and their ten most
// recent ledger entries, newest first. ?user_id= reads another member.
// GET /api/achievements/user
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if q := c.Query("user_id"); q != "" {
		target := utils.ParseIntDefault(q, 0)
		if target <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user_id"})
		}
		userID = uint(target)
	}

	agg, events, err := achievementService.GetUserAchievements(c.Context(), userID)
	if err != nil {
		log.Printf("fetch achievements failed for user %d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"achievements":  agg,
		"recent_events": events,
	})
}
