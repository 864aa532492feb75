// handlers/admin/users.go
package admin

import (
	"faithhub/database"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists member accounts.
// GET /api/admin/users?limit=&offset=
func GetUsers(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 200)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()

	var total int64
	db.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := db.Preload("Achievements").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// BanUser toggles the banned flag on an account. Banned members drop off the
// leaderboard but their ledger entries remain (the ledger is append-only).
// POST /api/admin/users/:id/ban
func BanUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Banned bool `json:"banned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	result := db.Model(&models.User{}).Where("id = ?", id).Update("is_banned", req.Banned)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user_id": id,
		"banned":  req.Banned,
	})
}
