// handlers/prayers.go - Prayer request wall
package handlers

import (
	"faithhub/database"
	"faithhub/middleware"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePrayerRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Body        string `json:"body" validate:"required,max=5000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// GetPrayerRequests lists requests, newest first.
// GET /api/prayers?answered=&limit=
func GetPrayerRequests(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 100)

	db := database.GetDB()
	query := db.Order("created_at DESC").Limit(limit)
	if answered := c.Query("answered"); answered != "" {
		query = query.Where("is_answered = ?", answered == "true")
	}

	var requests []models.PrayerRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch prayer requests"})
	}

	// Hide the author of anonymous requests
	for i := range requests {
		if requests[i].IsAnonymous {
			requests[i].UserID = 0
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"prayers": requests,
	})
}

// CreatePrayer submits a new prayer request.
// POST /api/prayers
func CreatePrayer(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreatePrayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationErrors(err)})
	}

	prayer := models.PrayerRequest{
		UserID:      userID,
		Title:       req.Title,
		Body:        req.Body,
		IsAnonymous: req.IsAnonymous,
	}

	db := database.GetDB()
	if err := db.Create(&prayer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create prayer request"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"prayer":  prayer,
	})
}

// PrayForRequest increments the prayer counter on a request.
// POST /api/prayers/:id/pray
func PrayForRequest(c *fiber.Ctx) error {
	if _, err := middleware.GetUserID(c); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prayer request id"})
	}

	db := database.GetDB()
	result := db.Model(&models.PrayerRequest{}).
		Where("id = ?", id).
		Update("prayer_count", gorm.Expr("prayer_count + 1"))
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record prayer"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Prayer request not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
