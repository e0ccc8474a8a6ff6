package environment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazelmere/envbooker-backend/internal/schedule"
)

func TestSettingsCodecRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		settings schedule.Settings
	}{
		{
			name:     "daily",
			settings: schedule.Settings{DaysAhead: 7},
		},
		{
			name:     "one off",
			settings: schedule.Settings{Instant: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)},
		},
		{
			name: "custom",
			settings: schedule.Settings{
				DaysAhead:  3,
				TimesOfDay: []string{"09:00", "14:30"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := encodeSettings(tc.settings)
			require.NoError(t, err)

			decoded, err := decodeSettings(raw)
			require.NoError(t, err)

			assert.Equal(t, tc.settings, decoded)
		})
	}
}

func TestDecodeSettingsRejectsGarbage(t *testing.T) {
	_, err := decodeSettings([]byte("not json"))
	assert.Error(t, err)
}

func TestDecodeSettingsEmptyObject(t *testing.T) {
	s, err := decodeSettings([]byte("{}"))
	require.NoError(t, err)

	assert.Zero(t, s.DaysAhead)
	assert.True(t, s.Instant.IsZero())
	assert.Empty(t, s.TimesOfDay)
}
