package availability

import (
	"fmt"
	"testing"
	"time"

	"marketplace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday
func monday(hour, min int, loc *time.Location) time.Time {
	return time.Date(2024, time.January, 1, hour, min, 0, 0, loc)
}

func weekdaySchedule(day int, opening, closing string) []models.OpeningHours {
	return []models.OpeningHours{{RestaurantID: 1, Day: day, OpeningTime: opening, ClosingTime: closing}}
}

func TestBusinessDay(t *testing.T) {
	assert.Equal(t, 0, BusinessDay(time.Monday))
	assert.Equal(t, 2, BusinessDay(time.Wednesday))
	assert.Equal(t, 5, BusinessDay(time.Saturday))
	assert.Equal(t, 6, BusinessDay(time.Sunday))
}

func TestNormalizeClock(t *testing.T) {
	for in, want := range map[string]string{
		"09:00":    "09:00",
		"09:00:30": "09:00",
		"9:5":      "09:05",
		"23:59":    "23:59",
	} {
		got, err := NormalizeClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "24:00", "12:60", "noon", "12", "12:00:00:00"} {
		_, err := NormalizeClock(in)
		assert.Error(t, err, in)
	}
}

func TestClockRoundTripAtUTC(t *testing.T) {
	// with a zero viewer offset the conversion must be the identity, for
	// every minute of the day
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			clock := fmt.Sprintf("%02d:%02d", h, m)
			local, err := UTCToLocal(clock, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, clock, local)
			back, err := LocalToUTC(local, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, clock, back)
		}
	}
}

func TestClockRoundTripAtFixedOffset(t *testing.T) {
	riga := time.FixedZone("EET", 2*60*60)
	kathmandu := time.FixedZone("NPT", 5*60*60+45*60)

	for _, loc := range []*time.Location{riga, kathmandu} {
		for _, clock := range []string{"00:00", "06:30", "12:00", "21:15", "23:59"} {
			local, err := UTCToLocal(clock, loc)
			require.NoError(t, err)
			back, err := LocalToUTC(local, loc)
			require.NoError(t, err)
			assert.Equal(t, clock, back, "zone %s clock %s", loc, clock)
		}
	}

	local, err := UTCToLocal("09:00", riga)
	require.NoError(t, err)
	assert.Equal(t, "11:00", local)
}

func TestIsOpenAt(t *testing.T) {
	hours := weekdaySchedule(0, "09:00", "22:00") // Monday, UTC

	assert.True(t, IsOpenAt(hours, monday(10, 0, time.UTC)))
	assert.False(t, IsOpenAt(hours, monday(23, 0, time.UTC)))
	assert.False(t, IsOpenAt(hours, monday(8, 59, time.UTC)))

	// both ends are inclusive
	assert.True(t, IsOpenAt(hours, monday(9, 0, time.UTC)))
	assert.True(t, IsOpenAt(hours, monday(22, 0, time.UTC)))

	// Tuesday has no entry, so the restaurant is closed all day
	tuesday := monday(12, 0, time.UTC).AddDate(0, 0, 1)
	assert.False(t, IsOpenAt(hours, tuesday))

	// empty schedule means never open
	assert.False(t, IsOpenAt(nil, monday(12, 0, time.UTC)))
}

func TestIsOpenAtViewerOffset(t *testing.T) {
	hours := weekdaySchedule(0, "09:00", "22:00")
	plusTwo := time.FixedZone("EET", 2*60*60)

	// 10:00 UTC is 12:00 on the viewer's clock, inside the 11:00–24:00 window
	assert.True(t, IsOpenAt(hours, monday(12, 0, plusTwo)))
	// 10:30 local is before the converted 11:00 opening
	assert.False(t, IsOpenAt(hours, monday(10, 30, plusTwo)))
}

func TestIsOpenAtOvernightWindow(t *testing.T) {
	// opens Monday evening, closes after midnight
	hours := weekdaySchedule(0, "20:00", "02:00")

	assert.False(t, IsOpenAt(hours, monday(19, 0, time.UTC)))
	assert.True(t, IsOpenAt(hours, monday(21, 0, time.UTC)))
	assert.True(t, IsOpenAt(hours, monday(23, 59, time.UTC)))

	// still open in the small hours of Tuesday
	tuesdayNight := monday(1, 0, time.UTC).AddDate(0, 0, 1)
	assert.True(t, IsOpenAt(hours, tuesdayNight))
	tuesdayMorning := monday(3, 0, time.UTC).AddDate(0, 0, 1)
	assert.False(t, IsOpenAt(hours, tuesdayMorning))
}

func TestNextOpening(t *testing.T) {
	hours := weekdaySchedule(0, "09:00", "22:00")

	// before today's opening it is today's opening
	next, ok := NextOpening(hours, monday(8, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Opening{Day: 0, Time: "09:00"}, next)

	// after it has passed, the only entry comes around again next week
	next, ok = NextOpening(hours, monday(10, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Opening{Day: 0, Time: "09:00"}, next)

	// closed days in between are skipped
	multi := []models.OpeningHours{
		{Day: 0, OpeningTime: "09:00", ClosingTime: "22:00"},
		{Day: 3, OpeningTime: "11:00", ClosingTime: "20:00"},
	}
	next, ok = NextOpening(multi, monday(23, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Opening{Day: 3, Time: "11:00"}, next)

	// a fully closed week has no next opening
	_, ok = NextOpening(nil, monday(12, 0, time.UTC))
	assert.False(t, ok)
}
