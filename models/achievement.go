// models/achievement.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// AchievementEventType is the closed set of spiritual achievement claims a
// member can submit. New types require a validator rule and a counter column.
type AchievementEventType string

const (
	PrayerWarriorAchieved    AchievementEventType = "PRAYER_WARRIOR_ACHIEVED"
	BibleScholarCompleted    AchievementEventType = "BIBLE_SCHOLAR_COMPLETED"
	SoulWinnerMilestone      AchievementEventType = "SOUL_WINNER_MILESTONE"
	MiracleWorkerDocumented  AchievementEventType = "MIRACLE_WORKER_DOCUMENTED"
	DiscipleshipLeader       AchievementEventType = "DISCIPLESHIP_LEADER"
	ChurchPlanterActivated   AchievementEventType = "CHURCH_PLANTER_ACTIVATED"
	TestimonyShared          AchievementEventType = "TESTIMONY_SHARED"
	MinistryServiceCompleted AchievementEventType = "MINISTRY_SERVICE_COMPLETED"
)

// AllEventTypes lists every valid event type, in display order.
var AllEventTypes = []AchievementEventType{
	PrayerWarriorAchieved,
	BibleScholarCompleted,
	SoulWinnerMilestone,
	MiracleWorkerDocumented,
	DiscipleshipLeader,
	ChurchPlanterActivated,
	TestimonyShared,
	MinistryServiceCompleted,
}

// IsValid reports whether t is a known event type.
func (t AchievementEventType) IsValid() bool {
	for _, et := range AllEventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// AchievementEvent is one immutable entry in the achievement ledger.
// Events are only ever inserted; there is no update or delete path.
type AchievementEvent struct {
	EventID    string               `gorm:"primaryKey;size:36" json:"event_id"`
	UserID     uint                 `gorm:"not null;index:idx_achievement_events_user" json:"user_id"`
	EventType  AchievementEventType `gorm:"not null;index" json:"event_type"`
	EventData  datatypes.JSON       `gorm:"type:jsonb;not null" json:"event_data"`
	OccurredAt time.Time            `gorm:"not null;index:idx_achievement_events_user" json:"occurred_at"`
	Version    int                  `gorm:"not null;default:1" json:"version"`
}

// Payload shapes, one per event type. EventData is decoded into the matching
// struct before any rule runs, so the rules never touch raw JSON.

type PrayerWarriorData struct {
	SessionsLed       int    `json:"sessions_led"`
	ParticipantsCount int    `json:"participants_count"`
	Location          string `json:"location"`
}

type BibleScholarData struct {
	CourseID             string `json:"course_id"`
	CompletionPercentage int    `json:"completion_percentage"`
}

type SoulWinnerData struct {
	Conversions       int      `json:"conversions"`
	ConversionStories []string `json:"conversion_stories"`
	OutreachMethod    string   `json:"outreach_method"`
}

type MiracleWorkerData struct {
	Healings     int      `json:"healings"`
	HealingTypes []string `json:"healing_types"`
	Testimonies  []string `json:"testimonies"`
}

type DiscipleshipLeaderData struct {
	DisciplesMentored int    `json:"disciples_mentored"`
	MentorshipMonths  int    `json:"mentorship_months"`
	Curriculum        string `json:"curriculum"`
}

type ChurchPlanterData struct {
	ChurchesPlanted  int    `json:"churches_planted"`
	CongregationSize int    `json:"congregation_size"`
	Location         string `json:"location"`
}

type TestimonyData struct {
	Testimony string `json:"testimony"`
	Platform  string `json:"platform"`
}

type MinistryServiceData struct {
	HoursServed  int    `json:"hours_served"`
	MinistryArea string `json:"ministry_area"`
}

// DecodeEventData decodes raw event data into the typed payload for the given
// event type. Unknown types and malformed JSON are rejected here, before any
// validation rule runs.
func DecodeEventData(eventType AchievementEventType, raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("event_data is required")
	}

	var (
		payload any
		err     error
	)

	switch eventType {
	case PrayerWarriorAchieved:
		var d PrayerWarriorData
		err = json.Unmarshal(raw, &d)
		payload = d
	case BibleScholarCompleted:
		var d BibleScholarData
		err = json.Unmarshal(raw, &d)
		payload = d
	case SoulWinnerMilestone:
		var d SoulWinnerData
		err = json.Unmarshal(raw, &d)
		payload = d
	case MiracleWorkerDocumented:
		var d MiracleWorkerData
		err = json.Unmarshal(raw, &d)
		payload = d
	case DiscipleshipLeader:
		var d DiscipleshipLeaderData
		err = json.Unmarshal(raw, &d)
		payload = d
	case ChurchPlanterActivated:
		var d ChurchPlanterData
		err = json.Unmarshal(raw, &d)
		payload = d
	case TestimonyShared:
		var d TestimonyData
		err = json.Unmarshal(raw, &d)
		payload = d
	case MinistryServiceCompleted:
		var d MinistryServiceData
		err = json.Unmarshal(raw, &d)
		payload = d
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid event_data for %s: %w", eventType, err)
	}
	return payload, nil
}
