// handlers/churches.go - Church directory
package handlers

import (
	"faithhub/database"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetChurches lists directory entries.
// GET /api/churches?city=&country=&limit=
func GetChurches(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 100)

	db := database.GetDB()
	query := db.Order("name ASC").Limit(limit)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}

	var churches []models.Church
	if err := query.Find(&churches).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch churches"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"churches": churches,
	})
}

// SearchChurches does a name search over the directory.
// GET /api/churches/search?q=
func SearchChurches(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Search query is required"})
	}
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 20), 1, 50)

	db := database.GetDB()
	var churches []models.Church
	if err := db.Where("name ILIKE ?", "%"+q+"%").
		Order("name ASC").
		Limit(limit).
		Find(&churches).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Search failed"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"churches": churches,
		"query":    q,
	})
}
