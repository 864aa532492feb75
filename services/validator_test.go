package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"faithhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory CourseCatalog.
type fakeCatalog struct {
	courses     map[string]bool
	completions map[string]bool // "userID:courseID"
}

func (f *fakeCatalog) Exists(ctx context.Context, courseID string) (bool, error) {
	return f.courses[courseID], nil
}

func (f *fakeCatalog) CompletedBy(ctx context.Context, userID uint, courseID string) (bool, error) {
	return f.completions[fmt.Sprintf("%d:%s", userID, courseID)], nil
}

// fakeHistory is an in-memory AchievementHistory.
type fakeHistory struct {
	agg          *models.UserSpiritualAchievements
	courseEvents map[string]bool
}

func (f *fakeHistory) Aggregate(ctx context.Context, userID uint) (*models.UserSpiritualAchievements, error) {
	return f.agg, nil
}

func (f *fakeHistory) HasCourseEvent(ctx context.Context, userID uint, courseID string) (bool, error) {
	return f.courseEvents[courseID], nil
}

func newTestValidator() *AchievementValidator {
	return &AchievementValidator{
		Catalog: &fakeCatalog{
			courses:     map[string]bool{"romans-101": true},
			completions: map[string]bool{"1:romans-101": true},
		},
		History: &fakeHistory{},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestValidate_PrayerWarrior_Accepted(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.PrayerWarriorData{
		SessionsLed:       4,
		ParticipantsCount: 6,
		Location:          "Fellowship Hall",
	})

	res, err := v.Validate(context.Background(), 1, models.PrayerWarriorAchieved, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 40, res.SpiritualPoints)
	assert.Equal(t, models.RankBeliever, res.SuggestedRank)
}

func TestValidate_PrayerWarrior_RuleViolations(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.PrayerWarriorData{
		SessionsLed:       0,
		ParticipantsCount: 2,
		Location:          string(make([]byte, 101)),
	})

	res, err := v.Validate(context.Background(), 1, models.PrayerWarriorAchieved, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 3)
	assert.Equal(t, 0, res.SpiritualPoints)
}

func TestValidate_PrayerWarrior_DuplicateWarning(t *testing.T) {
	v := newTestValidator()
	v.History = &fakeHistory{
		agg: &models.UserSpiritualAchievements{UserID: 1, PrayerSessionsLed: 10},
	}

	raw := mustJSON(t, models.PrayerWarriorData{
		SessionsLed:       5,
		ParticipantsCount: 4,
	})

	res, err := v.Validate(context.Background(), 1, models.PrayerWarriorAchieved, raw)
	require.NoError(t, err)

	// Warnings never block acceptance
	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "possible duplicate")
	assert.Equal(t, 50, res.SpiritualPoints)
}

func TestValidate_BibleScholar_Accepted(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.BibleScholarData{
		CourseID:             "romans-101",
		CompletionPercentage: 100,
	})

	res, err := v.Validate(context.Background(), 1, models.BibleScholarCompleted, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, 150, res.SpiritualPoints)
	assert.Equal(t, models.RankDisciple, res.SuggestedRank)
}

func TestValidate_BibleScholar_CourseNotFound(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.BibleScholarData{
		CourseID:             "unknown-course",
		CompletionPercentage: 100,
	})

	res, err := v.Validate(context.Background(), 1, models.BibleScholarCompleted, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "course not found: unknown-course")
}

func TestValidate_BibleScholar_IncompleteAndMissingCourse(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.BibleScholarData{CompletionPercentage: 80})

	res, err := v.Validate(context.Background(), 1, models.BibleScholarCompleted, raw)
	require.NoError(t, err)

	// Every violated rule is listed, not just the first
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidate_BibleScholar_RepeatCourseWarning(t *testing.T) {
	v := newTestValidator()
	v.History = &fakeHistory{courseEvents: map[string]bool{"romans-101": true}}

	raw := mustJSON(t, models.BibleScholarData{
		CourseID:             "romans-101",
		CompletionPercentage: 100,
	})

	res, err := v.Validate(context.Background(), 1, models.BibleScholarCompleted, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "already claimed")
}

func TestValidate_BibleScholar_MissingCompletionRecordWarns(t *testing.T) {
	v := newTestValidator()
	v.Catalog = &fakeCatalog{courses: map[string]bool{"romans-101": true}}

	raw := mustJSON(t, models.BibleScholarData{
		CourseID:             "romans-101",
		CompletionPercentage: 100,
	})

	res, err := v.Validate(context.Background(), 1, models.BibleScholarCompleted, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no completion record")
}

func TestValidate_SoulWinner_StoryCountMustMatch(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.SoulWinnerData{
		Conversions:       3,
		ConversionStories: []string{"story one", "story two"},
		OutreachMethod:    "personal_evangelism",
	})

	res, err := v.Validate(context.Background(), 1, models.SoulWinnerMilestone, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "exactly 3 entries")
}

func TestValidate_SoulWinner_InvalidOutreachMethod(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.SoulWinnerData{
		Conversions:       1,
		ConversionStories: []string{"a testimony"},
		OutreachMethod:    "door_prizes",
	})

	res, err := v.Validate(context.Background(), 1, models.SoulWinnerMilestone, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "invalid outreach method: door_prizes")
}

func TestValidate_SoulWinner_ManyConversionsWarns(t *testing.T) {
	v := newTestValidator()

	stories := make([]string, 11)
	for i := range stories {
		stories[i] = "story"
	}
	raw := mustJSON(t, models.SoulWinnerData{
		Conversions:       11,
		ConversionStories: stories,
		OutreachMethod:    "mission_trip",
	})

	res, err := v.Validate(context.Background(), 1, models.SoulWinnerMilestone, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, 1100, res.SpiritualPoints)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "manual verification")
}

func TestValidate_MiracleWorker_UnknownHealingTypeNamed(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.MiracleWorkerData{
		Healings:     2,
		HealingTypes: []string{"physical", "unknown_type"},
		Testimonies:  []string{"restored"},
	})

	res, err := v.Validate(context.Background(), 1, models.MiracleWorkerDocumented, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "unknown_type")
}

func TestValidate_MiracleWorker_OneErrorPerInvalidEntry(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.MiracleWorkerData{
		Healings:     1,
		HealingTypes: []string{"bogus_a", "bogus_b"},
		Testimonies:  []string{"witnessed"},
	})

	res, err := v.Validate(context.Background(), 1, models.MiracleWorkerDocumented, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidate_MiracleWorker_TestimoniesRequired(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.MiracleWorkerData{
		Healings:     2,
		HealingTypes: []string{"physical"},
	})

	res, err := v.Validate(context.Background(), 1, models.MiracleWorkerDocumented, raw)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "testimonies")
}

func TestValidate_MiracleWorker_WitnessVerificationWarning(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.MiracleWorkerData{
		Healings:     3,
		HealingTypes: []string{"physical", "emotional"},
		Testimonies:  []string{"one", "two", "three"},
	})

	res, err := v.Validate(context.Background(), 1, models.MiracleWorkerDocumented, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, 450, res.SpiritualPoints)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "witness verification")
}

func TestValidate_DiscipleshipLeader(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.DiscipleshipLeaderData{
		DisciplesMentored: 4,
		MentorshipMonths:  6,
		Curriculum:        "Foundations of Faith",
	})

	res, err := v.Validate(context.Background(), 1, models.DiscipleshipLeader, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, 300, res.SpiritualPoints)

	raw = mustJSON(t, models.DiscipleshipLeaderData{DisciplesMentored: 0, MentorshipMonths: 0})
	res, err = v.Validate(context.Background(), 1, models.DiscipleshipLeader, raw)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidate_ChurchPlanter(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.ChurchPlanterData{
		ChurchesPlanted:  1,
		CongregationSize: 25,
		Location:         "Riverside",
	})

	res, err := v.Validate(context.Background(), 1, models.ChurchPlanterActivated, raw)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, 500, res.SpiritualPoints)
	assert.Equal(t, models.RankMinister, res.SuggestedRank)
	assert.Empty(t, res.Warnings)

	raw = mustJSON(t, models.ChurchPlanterData{ChurchesPlanted: 2, CongregationSize: 40})
	res, err = v.Validate(context.Background(), 1, models.ChurchPlanterActivated, raw)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "manual verification")
}

func TestValidate_Testimony(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.TestimonyData{Testimony: "Delivered from fear.", Platform: "small_group"})
	res, err := v.Validate(context.Background(), 1, models.TestimonyShared, raw)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, 25, res.SpiritualPoints)

	raw = mustJSON(t, models.TestimonyData{Testimony: "", Platform: "megaphone"})
	res, err = v.Validate(context.Background(), 1, models.TestimonyShared, raw)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestValidate_MinistryService(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.MinistryServiceData{HoursServed: 8, MinistryArea: "youth"})
	res, err := v.Validate(context.Background(), 1, models.MinistryServiceCompleted, raw)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, 40, res.SpiritualPoints)

	raw = mustJSON(t, models.MinistryServiceData{HoursServed: 150, MinistryArea: "media"})
	res, err = v.Validate(context.Background(), 1, models.MinistryServiceCompleted, raw)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "manual verification")
}

func TestValidate_UnknownEventType(t *testing.T) {
	v := newTestValidator()

	res, err := v.Validate(context.Background(), 1, "HOLY_ROLLER", []byte(`{}`))
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "unknown event type")
}

func TestValidate_MalformedPayload(t *testing.T) {
	v := newTestValidator()

	res, err := v.Validate(context.Background(), 1, models.PrayerWarriorAchieved, []byte(`{"sessions_led": "four"}`))
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)
}

func TestValidate_IsPureAndRepeatable(t *testing.T) {
	v := newTestValidator()

	raw := mustJSON(t, models.SoulWinnerData{
		Conversions:       2,
		ConversionStories: []string{"first", "second"},
		OutreachMethod:    "church_outreach",
	})

	first, err := v.Validate(context.Background(), 1, models.SoulWinnerMilestone, raw)
	require.NoError(t, err)
	second, err := v.Validate(context.Background(), 1, models.SoulWinnerMilestone, raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
