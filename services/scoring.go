// services/scoring.go - Spiritual score and rank calculation
package services

import (
	"faithhub/models"
)

// Point formulas, one per event type. Kept together so the scoring table is
// readable at a glance.
const (
	pointsPerPrayerSession = 10
	pointsBibleScholar     = 150
	pointsPerConversion    = 100
	pointsPerHealing       = 150
	pointsPerDisciple      = 75
	pointsPerChurchPlanted = 500
	pointsTestimonyShared  = 25
	pointsPerMinistryHour  = 5
)

// Points computes the award for a decoded event payload. Zero for payloads
// that fail validation anyway (negative counts never reach scoring).
func Points(eventType models.AchievementEventType, payload any) int {
	switch d := payload.(type) {
	case models.PrayerWarriorData:
		return d.SessionsLed * pointsPerPrayerSession
	case models.BibleScholarData:
		return pointsBibleScholar
	case models.SoulWinnerData:
		return d.Conversions * pointsPerConversion
	case models.MiracleWorkerData:
		return d.Healings * pointsPerHealing
	case models.DiscipleshipLeaderData:
		return d.DisciplesMentored * pointsPerDisciple
	case models.ChurchPlanterData:
		return d.ChurchesPlanted * pointsPerChurchPlanted
	case models.TestimonyData:
		return pointsTestimonyShared
	case models.MinistryServiceData:
		return d.HoursServed * pointsPerMinistryHour
	}
	return 0
}

// rankThresholds in descending order; the first threshold the score meets
// wins.
var rankThresholds = []struct {
	Min  int
	Rank models.SpiritualRank
}{
	{10000, models.RankCardinal},
	{5000, models.RankApostle},
	{2500, models.RankPastor},
	{1000, models.RankEvangelist},
	{500, models.RankMinister},
	{100, models.RankDisciple},
	{0, models.RankBeliever},
}

// RankForScore maps a cumulative spiritual score to its rank tier.
func RankForScore(score int) models.SpiritualRank {
	for _, t := range rankThresholds {
		if score >= t.Min {
			return t.Rank
		}
	}
	return models.RankBeliever
}
