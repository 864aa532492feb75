// handlers/courses.go - Discipleship course catalog
package handlers

import (
	"time"

	"faithhub/database"
	"faithhub/middleware"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCourses lists active catalog courses.
// GET /api/courses?category=&limit=
func GetCourses(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 100), 1, 200)

	db := database.GetDB()
	query := db.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Order("title ASC").Limit(limit).Find(&courses).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourse returns one catalog entry.
// GET /api/courses/:id
func GetCourse(c *fiber.Ctx) error {
	db := database.GetDB()
	var course models.Course
	if err := db.Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"course":  course,
	})
}

// CompleteCourse records that the caller finished a course. Idempotent: a
// repeat completion returns the existing record.
// POST /api/courses/:id/complete
func CompleteCourse(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := c.Params("id")
	db := database.GetDB()

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
	}

	completion := models.CourseCompletion{
		UserID:      userID,
		CourseID:    courseID,
		CompletedAt: time.Now(),
	}
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).
		FirstOrCreate(&completion).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record completion"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"completion": completion,
	})
}
