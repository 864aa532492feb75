// services/validator.go - Per-event-type achievement validation
package services

import (
	"context"
	"fmt"

	"faithhub/models"
)

// ValidationResult is returned by the validator and never persisted.
// Errors block acceptance; warnings are informational only.
type ValidationResult struct {
	IsValid         bool                 `json:"is_valid"`
	Errors          []string             `json:"errors"`
	Warnings        []string             `json:"warnings"`
	SpiritualPoints int                  `json:"spiritual_points"`
	SuggestedRank   models.SpiritualRank `json:"suggested_rank"`
}

// CourseCatalog is the course-catalog collaborator the Bible-scholar rule
// cross-checks against. Injected so the validator is testable with a fake.
type CourseCatalog interface {
	Exists(ctx context.Context, courseID string) (bool, error)
	CompletedBy(ctx context.Context, userID uint, courseID string) (bool, error)
}

// AchievementHistory exposes the read-only lookups the duplicate-detection
// warnings need. Warnings are best-effort; a stale read here never affects
// correctness of the ledger or the aggregate.
type AchievementHistory interface {
	Aggregate(ctx context.Context, userID uint) (*models.UserSpiritualAchievements, error)
	HasCourseEvent(ctx context.Context, userID uint, courseID string) (bool, error)
}

// AchievementValidator dispatches each event type to its rule function.
type AchievementValidator struct {
	Catalog CourseCatalog
	History AchievementHistory
}

// ruleFunc evaluates one event type: business errors and warnings go into the
// result; the error return is reserved for collaborator failures.
type ruleFunc func(ctx context.Context, v *AchievementValidator, userID uint, payload any) (errs, warns []string, err error)

var eventRules = map[models.AchievementEventType]ruleFunc{
	models.PrayerWarriorAchieved:    validatePrayerWarrior,
	models.BibleScholarCompleted:    validateBibleScholar,
	models.SoulWinnerMilestone:      validateSoulWinner,
	models.MiracleWorkerDocumented:  validateMiracleWorker,
	models.DiscipleshipLeader:       validateDiscipleshipLeader,
	models.ChurchPlanterActivated:   validateChurchPlanter,
	models.TestimonyShared:          validateTestimony,
	models.MinistryServiceCompleted: validateMinistryService,
}

// Closed enumerations referenced by the rules.
var (
	outreachMethods = map[string]bool{
		"personal_evangelism": true,
		"church_outreach":     true,
		"community_service":   true,
		"digital_ministry":    true,
		"mission_trip":        true,
	}
	healingTypes = map[string]bool{
		"physical":   true,
		"emotional":  true,
		"spiritual":  true,
		"relational": true,
		"financial":  true,
		"mental":     true,
	}
	testimonyPlatforms = map[string]bool{
		"church_service": true,
		"small_group":    true,
		"social_media":   true,
		"public_event":   true,
		"written":        true,
	}
	ministryAreas = map[string]bool{
		"worship":        true,
		"children":       true,
		"youth":          true,
		"outreach":       true,
		"hospitality":    true,
		"media":          true,
		"administration": true,
	}
)

const maxLocationLen = 100

// Validate decodes the raw payload, runs the per-type rule set, and computes
// the point award. It performs no writes; the submit path persists only when
// IsValid is true. The returned error means a collaborator failed, not that
// the claim is invalid.
func (v *AchievementValidator) Validate(ctx context.Context, userID uint, eventType models.AchievementEventType, raw []byte) (ValidationResult, error) {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if !eventType.IsValid() {
		result.Errors = append(result.Errors, fmt.Sprintf("unknown event type: %s", eventType))
		result.SuggestedRank = models.RankBeliever
		return result, nil
	}

	payload, err := models.DecodeEventData(eventType, raw)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.SuggestedRank = models.RankBeliever
		return result, nil
	}

	rule := eventRules[eventType]
	errs, warns, err := rule(ctx, v, userID, payload)
	if err != nil {
		return ValidationResult{}, err
	}

	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)
	result.IsValid = len(result.Errors) == 0

	if result.IsValid {
		result.SpiritualPoints = Points(eventType, payload)
	}
	// SuggestedRank reflects this event's points alone, for display only.
	// The authoritative rank comes from the aggregate after the event lands.
	result.SuggestedRank = RankForScore(result.SpiritualPoints)

	return result, nil
}

func validatePrayerWarrior(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.PrayerWarriorData)
	var errs, warns []string

	if d.SessionsLed < 1 {
		errs = append(errs, "sessions_led must be at least 1")
	}
	if d.ParticipantsCount < 3 {
		errs = append(errs, "participants_count must be at least 3")
	}
	if len(d.Location) > maxLocationLen {
		errs = append(errs, fmt.Sprintf("location must be %d characters or fewer", maxLocationLen))
	}

	if len(errs) == 0 {
		agg, err := v.History.Aggregate(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		if agg != nil && agg.PrayerSessionsLed >= d.SessionsLed {
			warns = append(warns, fmt.Sprintf("possible duplicate: %d prayer sessions already recorded", agg.PrayerSessionsLed))
		}
	}

	return errs, warns, nil
}

func validateBibleScholar(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.BibleScholarData)
	var errs, warns []string

	if d.CompletionPercentage != 100 {
		errs = append(errs, "completion_percentage must be 100")
	}
	if d.CourseID == "" {
		errs = append(errs, "course_id is required")
	}

	if d.CourseID != "" {
		exists, err := v.Catalog.Exists(ctx, d.CourseID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			errs = append(errs, fmt.Sprintf("course not found: %s", d.CourseID))
		} else {
			completed, err := v.Catalog.CompletedBy(ctx, userID, d.CourseID)
			if err != nil {
				return nil, nil, err
			}
			if !completed {
				warns = append(warns, fmt.Sprintf("no completion record found for course %s", d.CourseID))
			}

			claimed, err := v.History.HasCourseEvent(ctx, userID, d.CourseID)
			if err != nil {
				return nil, nil, err
			}
			if claimed {
				warns = append(warns, fmt.Sprintf("course %s was already claimed for this achievement", d.CourseID))
			}
		}
	}

	return errs, warns, nil
}

func validateSoulWinner(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.SoulWinnerData)
	var errs, warns []string

	if d.Conversions < 1 {
		errs = append(errs, "conversions must be at least 1")
	}
	if len(d.ConversionStories) == 0 {
		errs = append(errs, "conversion_stories is required")
	} else if len(d.ConversionStories) != d.Conversions {
		errs = append(errs, fmt.Sprintf("conversion_stories must contain exactly %d entries, got %d", d.Conversions, len(d.ConversionStories)))
	}
	if !outreachMethods[d.OutreachMethod] {
		errs = append(errs, fmt.Sprintf("invalid outreach method: %s", d.OutreachMethod))
	}

	if d.Conversions > 10 {
		warns = append(warns, "more than 10 conversions requires manual verification")
	}

	return errs, warns, nil
}

func validateMiracleWorker(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.MiracleWorkerData)
	var errs, warns []string

	if d.Healings < 1 {
		errs = append(errs, "healings must be at least 1")
	}
	for _, ht := range d.HealingTypes {
		if !healingTypes[ht] {
			errs = append(errs, fmt.Sprintf("invalid healing type: %s", ht))
		}
	}
	if d.Healings > 0 && len(d.Testimonies) == 0 {
		errs = append(errs, "testimonies are required when healings are claimed")
	}

	if d.Healings >= 3 {
		warns = append(warns, "3 or more healings requires witness verification")
	}

	return errs, warns, nil
}

func validateDiscipleshipLeader(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.DiscipleshipLeaderData)
	var errs, warns []string

	if d.DisciplesMentored < 1 {
		errs = append(errs, "disciples_mentored must be at least 1")
	}
	if d.MentorshipMonths < 1 {
		errs = append(errs, "mentorship_months must be at least 1")
	}
	if len(d.Curriculum) > maxLocationLen {
		errs = append(errs, fmt.Sprintf("curriculum must be %d characters or fewer", maxLocationLen))
	}

	if d.DisciplesMentored > 12 {
		warns = append(warns, "more than 12 disciples requires manual verification")
	}

	return errs, warns, nil
}

func validateChurchPlanter(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.ChurchPlanterData)
	var errs, warns []string

	if d.ChurchesPlanted < 1 {
		errs = append(errs, "churches_planted must be at least 1")
	}
	if d.CongregationSize < 1 {
		errs = append(errs, "congregation_size must be at least 1")
	}
	if len(d.Location) > maxLocationLen {
		errs = append(errs, fmt.Sprintf("location must be %d characters or fewer", maxLocationLen))
	}

	if d.ChurchesPlanted > 1 {
		warns = append(warns, "multiple church plants in one claim requires manual verification")
	}

	return errs, warns, nil
}

func validateTestimony(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.TestimonyData)
	var errs []string

	if d.Testimony == "" {
		errs = append(errs, "testimony text is required")
	}
	if len(d.Testimony) > 5000 {
		errs = append(errs, "testimony must be 5000 characters or fewer")
	}
	if !testimonyPlatforms[d.Platform] {
		errs = append(errs, fmt.Sprintf("invalid platform: %s", d.Platform))
	}

	return errs, nil, nil
}

func validateMinistryService(ctx context.Context, v *AchievementValidator, userID uint, payload any) ([]string, []string, error) {
	d := payload.(models.MinistryServiceData)
	var errs, warns []string

	if d.HoursServed < 1 {
		errs = append(errs, "hours_served must be at least 1")
	}
	if !ministryAreas[d.MinistryArea] {
		errs = append(errs, fmt.Sprintf("invalid ministry area: %s", d.MinistryArea))
	}

	if d.HoursServed > 100 {
		warns = append(warns, "more than 100 hours in one claim requires manual verification")
	}

	return errs, warns, nil
}
