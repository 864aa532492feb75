// services/achievement_service.go - Event ledger append + aggregate projection
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"faithhub/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitResult is returned to the handler after an accepted submission.
type SubmitResult struct {
	EventID             string
	AchievementUnlocked bool
	PointsEarned        int
	NewRank             *models.SpiritualRank // set only when the rank changed in this submission
	Warnings            []string
	Aggregate           models.UserSpiritualAchievements
}

// AchievementService owns the submit pipeline: validate, append to the
// ledger, update the projection, all writes in one transaction.
type AchievementService struct {
	db        *gorm.DB
	validator *AchievementValidator
	cache     *LeaderboardCache
}

func NewAchievementService(db *gorm.DB, cache *LeaderboardCache) *AchievementService {
	return &AchievementService{
		db: db,
		validator: &AchievementValidator{
			Catalog: NewCourseCatalog(db),
			History: NewAchievementHistory(db),
		},
		cache: cache,
	}
}

// Validate runs the rule set without persisting anything.
func (s *AchievementService) Validate(ctx context.Context, userID uint, eventType models.AchievementEventType, raw []byte) (ValidationResult, error) {
	return s.validator.Validate(ctx, userID, eventType, raw)
}

// Submit validates the claim and, when valid, appends the event and updates
// the user's aggregate atomically. An invalid claim returns the validation
// result with a nil SubmitResult and persists nothing.
func (s *AchievementService) Submit(ctx context.Context, userID uint, eventType models.AchievementEventType, raw []byte) (*SubmitResult, ValidationResult, error) {
	vres, err := s.validator.Validate(ctx, userID, eventType, raw)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if !vres.IsValid {
		return nil, vres, nil
	}

	payload, err := models.DecodeEventData(eventType, raw)
	if err != nil {
		// Validate already decoded this payload; a failure here is a bug.
		return nil, ValidationResult{}, err
	}

	now := time.Now().UTC()
	event := models.AchievementEvent{
		EventID:    uuid.New().String(),
		UserID:     userID,
		EventType:  eventType,
		EventData:  datatypes.JSON(raw),
		OccurredAt: now,
		Version:    1,
	}

	result := &SubmitResult{
		EventID:      event.EventID,
		PointsEarned: vres.SpiritualPoints,
		Warnings:     vres.Warnings,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("append event: %w", err)
		}

		// Lock the aggregate row for the rank before/after comparison.
		// Increments below are expression-based, never stale read-modify-write.
		var agg models.UserSpiritualAchievements
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Attrs(models.UserSpiritualAchievements{
				UserID:               userID,
				CurrentSpiritualRank: models.RankBeliever,
			}).
			FirstOrCreate(&agg).Error; err != nil {
			return fmt.Errorf("load aggregate: %w", err)
		}

		prevRank := agg.CurrentSpiritualRank

		column, delta := counterDelta(eventType, payload)
		updates := map[string]any{
			"total_achievements":  gorm.Expr("total_achievements + 1"),
			"spiritual_score":     gorm.Expr("spiritual_score + ?", vres.SpiritualPoints),
			"last_achievement_at": now,
		}
		if column != "" {
			updates[column] = gorm.Expr(column+" + ?", delta)
		}
		if err := tx.Model(&models.UserSpiritualAchievements{}).
			Where("user_id = ?", userID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("update aggregate: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).First(&agg).Error; err != nil {
			return fmt.Errorf("reload aggregate: %w", err)
		}

		newRank := RankForScore(agg.SpiritualScore)
		if newRank != prevRank {
			if err := tx.Model(&models.UserSpiritualAchievements{}).
				Where("user_id = ?", userID).
				Updates(map[string]any{
					"current_spiritual_rank": newRank,
					"rank_achieved_at":       now,
				}).Error; err != nil {
				return fmt.Errorf("update rank: %w", err)
			}
			agg.CurrentSpiritualRank = newRank
			agg.RankAchievedAt = &now
			result.NewRank = &newRank
		}

		result.AchievementUnlocked = true
		result.Aggregate = agg
		return nil
	})
	if err != nil {
		return nil, ValidationResult{}, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return result, vres, nil
}

// GetUserAchievements returns the aggregate (zero-valued when the user has no
// accepted events yet) and the ten most recent ledger entries.
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID uint) (models.UserSpiritualAchievements, []models.AchievementEvent, error) {
	agg := models.UserSpiritualAchievements{
		UserID:               userID,
		CurrentSpiritualRank: models.RankBeliever,
	}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&agg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return agg, nil, err
	}

	var events []models.AchievementEvent
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Limit(10).
		Find(&events).Error; err != nil {
		return agg, nil, err
	}

	return agg, events, nil
}

// counterDelta maps an accepted event to the aggregate counter column it
// feeds and the amount to add. Shared by the transactional path and replay so
// the two can never drift.
func counterDelta(eventType models.AchievementEventType, payload any) (string, int) {
	switch d := payload.(type) {
	case models.PrayerWarriorData:
		return "prayer_sessions_led", d.SessionsLed
	case models.BibleScholarData:
		return "bible_studies_completed", 1
	case models.SoulWinnerData:
		return "souls_won", d.Conversions
	case models.MiracleWorkerData:
		return "miracles_documented", d.Healings
	case models.DiscipleshipLeaderData:
		return "disciples_mentored", d.DisciplesMentored
	case models.ChurchPlanterData:
		return "churches_planted", d.ChurchesPlanted
	case models.TestimonyData:
		return "testimonies_shared", 1
	case models.MinistryServiceData:
		return "ministry_hours_served", d.HoursServed
	}
	return "", 0
}

func addCounter(agg *models.UserSpiritualAchievements, column string, delta int) {
	switch column {
	case "prayer_sessions_led":
		agg.PrayerSessionsLed += delta
	case "bible_studies_completed":
		agg.BibleStudiesCompleted += delta
	case "souls_won":
		agg.SoulsWon += delta
	case "miracles_documented":
		agg.MiraclesDocumented += delta
	case "disciples_mentored":
		agg.DisciplesMentored += delta
	case "churches_planted":
		agg.ChurchesPlanted += delta
	case "testimonies_shared":
		agg.TestimoniesShared += delta
	case "ministry_hours_served":
		agg.MinistryHoursServed += delta
	}
}

// ReplayAggregate folds a user's accepted events, in occurrence order, into a
// fresh aggregate. The stored projection must always equal this fold.
func ReplayAggregate(userID uint, events []models.AchievementEvent) (models.UserSpiritualAchievements, error) {
	agg := models.UserSpiritualAchievements{
		UserID:               userID,
		CurrentSpiritualRank: models.RankBeliever,
	}

	for i := range events {
		ev := events[i]
		payload, err := models.DecodeEventData(ev.EventType, ev.EventData)
		if err != nil {
			return agg, fmt.Errorf("replay event %s: %w", ev.EventID, err)
		}

		agg.TotalAchievements++
		agg.SpiritualScore += Points(ev.EventType, payload)

		column, delta := counterDelta(ev.EventType, payload)
		addCounter(&agg, column, delta)

		occurred := ev.OccurredAt
		agg.LastAchievementAt = &occurred

		newRank := RankForScore(agg.SpiritualScore)
		if newRank != agg.CurrentSpiritualRank {
			agg.CurrentSpiritualRank = newRank
			agg.RankAchievedAt = &occurred
		}
	}

	return agg, nil
}

// RebuildAggregate recomputes one user's projection from the full ledger and
// overwrites the stored row. Used by the admin rebuild endpoint.
func (s *AchievementService) RebuildAggregate(ctx context.Context, userID uint) (models.UserSpiritualAchievements, error) {
	var rebuilt models.UserSpiritualAchievements

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var events []models.AchievementEvent
		if err := tx.Where("user_id = ?", userID).
			Order("occurred_at ASC").
			Find(&events).Error; err != nil {
			return err
		}

		agg, err := ReplayAggregate(userID, events)
		if err != nil {
			return err
		}

		if err := tx.Save(&agg).Error; err != nil {
			return err
		}
		rebuilt = agg
		return nil
	})
	if err != nil {
		return rebuilt, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return rebuilt, nil
}
