// handlers/admin/achievements.go - Ledger inspection and aggregate rebuild
package admin

import (
	"log"

	"faithhub/database"
	"faithhub/models"
	"faithhub/services"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

var achievementService *services.AchievementService

// InitAdminHandlers wires the admin-side achievement service.
func InitAdminHandlers(svc *services.AchievementService) {
	achievementService = svc
}

// GetAchievementEvents pages through the ledger, newest first, optionally
// scoped to one user or event type. The ledger itself is read-only; there is
// deliberately no update or delete endpoint.
// GET /api/admin/achievements/events?user_id=&event_type=&limit=&offset=
func GetAchievementEvents(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 200)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	query := db.Model(&models.AchievementEvent{})
	if uid := utils.ParseIntDefault(c.Query("user_id"), 0); uid > 0 {
		query = query.Where("user_id = ?", uid)
	}
	if et := c.Query("event_type"); et != "" {
		query = query.Where("event_type = ?", et)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count events"})
	}

	var events []models.AchievementEvent
	if err := query.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch events"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// RebuildAggregate replays a user's full ledger and overwrites the stored
// projection. The result must equal the incremental projection; a difference
// means the projection drifted and the rebuild is the fix.
// POST /api/admin/achievements/rebuild/:userId
func RebuildAggregate(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	agg, err := achievementService.RebuildAggregate(c.Context(), uint(userID))
	if err != nil {
		log.Printf("aggregate rebuild failed for user %d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to rebuild aggregate"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": agg,
	})
}
