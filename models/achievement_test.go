package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeIsValid(t *testing.T) {
	for _, et := range AllEventTypes {
		assert.True(t, et.IsValid(), string(et))
	}
	assert.False(t, AchievementEventType("GOLDEN_HALO").IsValid())
	assert.False(t, AchievementEventType("").IsValid())
}

func TestDecodeEventData_TypedPayloads(t *testing.T) {
	payload, err := DecodeEventData(PrayerWarriorAchieved, []byte(`{"sessions_led":2,"participants_count":5,"location":"chapel"}`))
	require.NoError(t, err)

	d, ok := payload.(PrayerWarriorData)
	require.True(t, ok)
	assert.Equal(t, 2, d.SessionsLed)
	assert.Equal(t, 5, d.ParticipantsCount)
	assert.Equal(t, "chapel", d.Location)
}

func TestDecodeEventData_UnknownType(t *testing.T) {
	_, err := DecodeEventData("NOT_A_TYPE", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestDecodeEventData_EmptyAndMalformed(t *testing.T) {
	_, err := DecodeEventData(SoulWinnerMilestone, nil)
	require.Error(t, err)

	_, err = DecodeEventData(SoulWinnerMilestone, []byte(`{"conversions":"many"}`))
	require.Error(t, err)
}
