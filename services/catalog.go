// services/catalog.go - GORM-backed collaborators for the validator
package services

import (
	"context"
	"errors"

	"faithhub/models"

	"gorm.io/gorm"
)

// gormCourseCatalog answers course lookups from the courses tables.
type gormCourseCatalog struct {
	db *gorm.DB
}

func NewCourseCatalog(db *gorm.DB) CourseCatalog {
	return &gormCourseCatalog{db: db}
}

func (c *gormCourseCatalog) Exists(ctx context.Context, courseID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ? AND is_active = ?", courseID, true).
		Count(&count).Error
	return count > 0, err
}

func (c *gormCourseCatalog) CompletedBy(ctx context.Context, userID uint, courseID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.CourseCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// gormAchievementHistory answers the read-only lookups behind duplicate
// warnings.
type gormAchievementHistory struct {
	db *gorm.DB
}

func NewAchievementHistory(db *gorm.DB) AchievementHistory {
	return &gormAchievementHistory{db: db}
}

func (h *gormAchievementHistory) Aggregate(ctx context.Context, userID uint) (*models.UserSpiritualAchievements, error) {
	var agg models.UserSpiritualAchievements
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&agg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (h *gormAchievementHistory) HasCourseEvent(ctx context.Context, userID uint, courseID string) (bool, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.AchievementEvent{}).
		Where("user_id = ? AND event_type = ? AND event_data->>'course_id' = ?",
			userID, models.BibleScholarCompleted, courseID).
		Count(&count).Error
	return count > 0, err
}
