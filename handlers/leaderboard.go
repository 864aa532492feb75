// handlers/leaderboard.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"faithhub/database"
	"faithhub/models"
	"faithhub/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardEntry struct {
	UserID             uint                 `json:"user_id"`
	Username           string               `json:"username"`
	Rank               models.SpiritualRank `json:"rank"`
	SpiritualScore     int                  `json:"spiritual_score"`
	AchievementsCount  int                  `json:"achievements_count"`
	SoulsWon           int                  `json:"souls_won"`
	PrayerSessionsLed  int                  `json:"prayer_sessions_led"`
	ChurchesPlanted    int                  `json:"churches_planted"`
	MiraclesDocumented int                  `json:"miracles_documented"`
}

type leaderboardPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	TotalCount  int64              `json:"total_count"`
}

// GetLeaderboard returns top members by spiritual score, optionally filtered
// by rank tier. Ordering is score descending with achievement count as the
// tiebreak.
// GET /api/achievements/leaderboard?rank=&limit=
func GetLeaderboard(c *fiber.Ctx) error {
	rankFilter := c.Query("rank")
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 100)

	if rankFilter != "" && !models.SpiritualRank(rankFilter).IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("invalid rank: %s", rankFilter)})
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", rankFilter, limit)
	if data, ok := leaderboardCache.Get(c.Context(), cacheKey); ok {
		var cached leaderboardPayload
		if json.Unmarshal(data, &cached) == nil {
			return c.JSON(fiber.Map{
				"success":     true,
				"leaderboard": cached.Leaderboard,
				"total_count": cached.TotalCount,
			})
		}
	}

	db := database.GetDB()

	query := `
		SELECT
			a.user_id,
			u.username,
			a.current_spiritual_rank AS rank,
			a.spiritual_score,
			a.total_achievements AS achievements_count,
			a.souls_won,
			a.prayer_sessions_led,
			a.churches_planted,
			a.miracles_documented
		FROM user_spiritual_achievements a
		JOIN users u ON u.id = a.user_id
		WHERE u.is_banned = false`
	args := []interface{}{}
	if rankFilter != "" {
		query += " AND a.current_spiritual_rank = ?"
		args = append(args, rankFilter)
	}
	query += " ORDER BY a.spiritual_score DESC, a.total_achievements DESC, a.user_id ASC LIMIT ?"
	args = append(args, limit)

	entries := []LeaderboardEntry{}
	if err := db.Raw(query, args...).Scan(&entries).Error; err != nil {
		log.Printf("leaderboard query failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	countQuery := db.Model(&models.UserSpiritualAchievements{}).
		Joins("JOIN users u ON u.id = user_spiritual_achievements.user_id").
		Where("u.is_banned = false")
	if rankFilter != "" {
		countQuery = countQuery.Where("current_spiritual_rank = ?", rankFilter)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		log.Printf("leaderboard count failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	if payload, err := json.Marshal(leaderboardPayload{Leaderboard: entries, TotalCount: total}); err == nil {
		leaderboardCache.Set(c.Context(), cacheKey, payload)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
		"total_count": total,
	})
}
