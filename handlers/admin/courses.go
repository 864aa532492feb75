// handlers/admin/courses.go - Catalog management
package admin

import (
	"faithhub/database"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Lessons     int    `json:"lessons" validate:"min=0"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCourse adds a catalog entry.
// POST /api/admin/courses
func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationErrors(err)})
	}

	course := models.Course{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Lessons:     req.Lessons,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	db := database.GetDB()
	if err := db.Create(&course).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"course":  course,
	})
}

// UpdateCourse edits a catalog entry.
// PUT /api/admin/courses/:id
func UpdateCourse(c *fiber.Ctx) error {
	db := database.GetDB()
	var course models.Course
	if err := db.Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.Category != "" {
		course.Category = req.Category
	}
	if req.Lessons > 0 {
		course.Lessons = req.Lessons
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := db.Save(&course).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"course":  course,
	})
}
