package services

import (
	"encoding/json"
	"testing"
	"time"

	"faithhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func makeEvent(t *testing.T, userID uint, eventType models.AchievementEventType, payload any, occurredAt time.Time) models.AchievementEvent {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return models.AchievementEvent{
		EventID:    "evt-" + occurredAt.Format("150405.000"),
		UserID:     userID,
		EventType:  eventType,
		EventData:  datatypes.JSON(raw),
		OccurredAt: occurredAt,
		Version:    1,
	}
}

func TestReplayAggregate_Empty(t *testing.T) {
	agg, err := ReplayAggregate(7, nil)
	require.NoError(t, err)

	assert.Equal(t, uint(7), agg.UserID)
	assert.Equal(t, models.RankBeliever, agg.CurrentSpiritualRank)
	assert.Zero(t, agg.TotalAchievements)
	assert.Zero(t, agg.SpiritualScore)
	assert.Nil(t, agg.LastAchievementAt)
	assert.Nil(t, agg.RankAchievedAt)
}

func TestReplayAggregate_CountersAndScore(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	events := []models.AchievementEvent{
		makeEvent(t, 1, models.PrayerWarriorAchieved, models.PrayerWarriorData{SessionsLed: 3, ParticipantsCount: 5}, base),
		makeEvent(t, 1, models.BibleScholarCompleted, models.BibleScholarData{CourseID: "romans-101", CompletionPercentage: 100}, base.Add(time.Hour)),
		makeEvent(t, 1, models.SoulWinnerMilestone, models.SoulWinnerData{Conversions: 2, ConversionStories: []string{"a", "b"}, OutreachMethod: "church_outreach"}, base.Add(2*time.Hour)),
		makeEvent(t, 1, models.MiracleWorkerDocumented, models.MiracleWorkerData{Healings: 1, HealingTypes: []string{"physical"}, Testimonies: []string{"t"}}, base.Add(3*time.Hour)),
		makeEvent(t, 1, models.DiscipleshipLeader, models.DiscipleshipLeaderData{DisciplesMentored: 2, MentorshipMonths: 4}, base.Add(4*time.Hour)),
		makeEvent(t, 1, models.ChurchPlanterActivated, models.ChurchPlanterData{ChurchesPlanted: 1, CongregationSize: 20}, base.Add(5*time.Hour)),
		makeEvent(t, 1, models.TestimonyShared, models.TestimonyData{Testimony: "grace", Platform: "written"}, base.Add(6*time.Hour)),
		makeEvent(t, 1, models.MinistryServiceCompleted, models.MinistryServiceData{HoursServed: 10, MinistryArea: "outreach"}, base.Add(7*time.Hour)),
	}

	agg, err := ReplayAggregate(1, events)
	require.NoError(t, err)

	assert.Equal(t, 8, agg.TotalAchievements)
	// 30 + 150 + 200 + 150 + 150 + 500 + 25 + 50
	assert.Equal(t, 1255, agg.SpiritualScore)
	assert.Equal(t, models.RankEvangelist, agg.CurrentSpiritualRank)

	assert.Equal(t, 3, agg.PrayerSessionsLed)
	assert.Equal(t, 1, agg.BibleStudiesCompleted)
	assert.Equal(t, 2, agg.SoulsWon)
	assert.Equal(t, 1, agg.MiraclesDocumented)
	assert.Equal(t, 2, agg.DisciplesMentored)
	assert.Equal(t, 1, agg.ChurchesPlanted)
	assert.Equal(t, 1, agg.TestimoniesShared)
	assert.Equal(t, 10, agg.MinistryHoursServed)

	require.NotNil(t, agg.LastAchievementAt)
	assert.Equal(t, base.Add(7*time.Hour), *agg.LastAchievementAt)
}

func TestReplayAggregate_RankAchievedAtTracksRankChanges(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	events := []models.AchievementEvent{
		// 50 points: still BELIEVER
		makeEvent(t, 1, models.PrayerWarriorAchieved, models.PrayerWarriorData{SessionsLed: 5, ParticipantsCount: 4}, base),
		// +150 = 200: DISCIPLE here
		makeEvent(t, 1, models.BibleScholarCompleted, models.BibleScholarData{CourseID: "c", CompletionPercentage: 100}, base.Add(time.Hour)),
		// +25 = 225: no rank change, timestamp must not move
		makeEvent(t, 1, models.TestimonyShared, models.TestimonyData{Testimony: "grace", Platform: "written"}, base.Add(2*time.Hour)),
	}

	agg, err := ReplayAggregate(1, events)
	require.NoError(t, err)

	assert.Equal(t, models.RankDisciple, agg.CurrentSpiritualRank)
	require.NotNil(t, agg.RankAchievedAt)
	assert.Equal(t, base.Add(time.Hour), *agg.RankAchievedAt)
	require.NotNil(t, agg.LastAchievementAt)
	assert.Equal(t, base.Add(2*time.Hour), *agg.LastAchievementAt)
}

func TestReplayAggregate_IsDeterministic(t *testing.T) {
	base := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	events := []models.AchievementEvent{
		makeEvent(t, 9, models.SoulWinnerMilestone, models.SoulWinnerData{Conversions: 5, ConversionStories: []string{"1", "2", "3", "4", "5"}, OutreachMethod: "mission_trip"}, base),
		makeEvent(t, 9, models.MinistryServiceCompleted, models.MinistryServiceData{HoursServed: 40, MinistryArea: "worship"}, base.Add(time.Hour)),
	}

	first, err := ReplayAggregate(9, events)
	require.NoError(t, err)
	second, err := ReplayAggregate(9, events)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReplayAggregate_BadPayloadSurfacesEventID(t *testing.T) {
	ev := models.AchievementEvent{
		EventID:    "evt-broken",
		UserID:     1,
		EventType:  models.PrayerWarriorAchieved,
		EventData:  datatypes.JSON([]byte(`{"sessions_led": "not-a-number"}`)),
		OccurredAt: time.Now().UTC(),
		Version:    1,
	}

	_, err := ReplayAggregate(1, []models.AchievementEvent{ev})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evt-broken")
}

func TestCounterDelta_CoversEveryEventType(t *testing.T) {
	cases := []struct {
		payload any
		column  string
		delta   int
	}{
		{models.PrayerWarriorData{SessionsLed: 3}, "prayer_sessions_led", 3},
		{models.BibleScholarData{CourseID: "c"}, "bible_studies_completed", 1},
		{models.SoulWinnerData{Conversions: 4}, "souls_won", 4},
		{models.MiracleWorkerData{Healings: 2}, "miracles_documented", 2},
		{models.DiscipleshipLeaderData{DisciplesMentored: 5}, "disciples_mentored", 5},
		{models.ChurchPlanterData{ChurchesPlanted: 1}, "churches_planted", 1},
		{models.TestimonyData{Testimony: "t"}, "testimonies_shared", 1},
		{models.MinistryServiceData{HoursServed: 12}, "ministry_hours_served", 12},
	}

	for _, tc := range cases {
		column, delta := counterDelta("", tc.payload)
		assert.Equal(t, tc.column, column)
		assert.Equal(t, tc.delta, delta)
	}
}
