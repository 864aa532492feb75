// handlers/users.go
package handlers

import (
	"faithhub/database"
	"faithhub/middleware"
	"faithhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated member's profile with their
// spiritual aggregate preloaded.
// GET /api/users/me
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetUserProfile returns a public member profile.
// GET /api/users/:id
func GetUserProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.Preload("Achievements").First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	// Public view only
	user.Email = nil
	user.Password = ""

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
