package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketplace-api/models"
)

// Schedules store clock times as UTC "HH:mm" strings keyed by a Monday-first
// day index. All conversions to and from a viewer's wall clock happen here;
// the rest of the system only ever sees normalized values.
//
// TODO: schedules are interpreted in the viewer's timezone. If a restaurant
// sits in a different zone than the viewer, open/closed can be wrong around
// the edges; fixing this needs a timezone field on the restaurant itself.

// BusinessDay converts Go's Sunday-first weekday to the Monday-first index
// used by OpeningHours (Monday=0 … Sunday=6). This is the only place a
// native weekday crosses into the business convention.
func BusinessDay(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// refDate pins clock-only conversions onto a concrete instant. Any date
// works as long as both directions use the same one.
var refDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var errBadClock = errors.New("clock time must be HH:mm between 00:00 and 23:59")

// NormalizeClock validates a wire clock value and strips an optional
// seconds component, returning canonical "HH:mm".
func NormalizeClock(s string) (string, error) {
	h, m, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, errBadClock
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errBadClock
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errBadClock
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, errBadClock
	}
	return hour, minute, nil
}

// UTCToLocal renders a stored UTC "HH:mm" clock time as the viewer's local
// wall clock in loc. Correct for the zone's offset at the reference date.
func UTCToLocal(clock string, loc *time.Location) (string, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	t := time.Date(refDate.Year(), refDate.Month(), refDate.Day(), h, m, 0, 0, time.UTC).In(loc)
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()), nil
}

// LocalToUTC is the inverse of UTCToLocal: a wall-clock "HH:mm" in loc is
// read back as a UTC clock time for storage.
func LocalToUTC(clock string, loc *time.Location) (string, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	t := time.Date(refDate.Year(), refDate.Month(), refDate.Day(), h, m, 0, 0, loc).UTC()
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()), nil
}

func entryFor(hours []models.OpeningHours, day int) (models.OpeningHours, bool) {
	for _, h := range hours {
		if h.Day == day {
			return h, true
		}
	}
	return models.OpeningHours{}, false
}

func clockOf(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// localWindow converts one schedule entry to the viewer's wall clock. The
// closesNextDay flag marks a window that runs past midnight (closing time
// numerically before opening time).
func localWindow(entry models.OpeningHours, loc *time.Location) (opensAt, closesAt string, closesNextDay bool, err error) {
	opensAt, err = UTCToLocal(entry.OpeningTime, loc)
	if err != nil {
		return "", "", false, err
	}
	closesAt, err = UTCToLocal(entry.ClosingTime, loc)
	if err != nil {
		return "", "", false, err
	}
	return opensAt, closesAt, closesAt < opensAt, nil
}

// IsOpenAt reports whether the schedule is open at the given instant, read
// in the instant's own location. The day lookup and the clock comparison
// both happen on the viewer's wall clock; comparison is inclusive on both
// ends. Windows that close after midnight are attributed to the day they
// opened on.
func IsOpenAt(hours []models.OpeningHours, now time.Time) bool {
	cur := clockOf(now)

	if entry, ok := entryFor(hours, BusinessDay(now.Weekday())); ok {
		opensAt, closesAt, closesNextDay, err := localWindow(entry, now.Location())
		if err == nil {
			if closesNextDay {
				if cur >= opensAt {
					return true
				}
			} else if cur >= opensAt && cur <= closesAt {
				return true
			}
		}
	}

	// yesterday's window may still be running if it closes after midnight
	yesterday := BusinessDay(now.AddDate(0, 0, -1).Weekday())
	if entry, ok := entryFor(hours, yesterday); ok {
		_, closesAt, closesNextDay, err := localWindow(entry, now.Location())
		if err == nil && closesNextDay && cur <= closesAt {
			return true
		}
	}
	return false
}

// Opening is a concrete upcoming opening slot for "Opens at …" labels.
type Opening struct {
	Day  int    `json:"day"`  // Monday-first business day
	Time string `json:"time"` // viewer-local "HH:mm"
}

// NextOpening scans forward from now for the first future opening time,
// skipping days without a schedule entry. Today's opening counts only while
// it is still ahead; a week later the same entry counts again. ok is false
// when every day of the week is closed.
func NextOpening(hours []models.OpeningHours, now time.Time) (Opening, bool) {
	cur := clockOf(now)
	for offset := 0; offset <= 7; offset++ {
		day := BusinessDay(now.AddDate(0, 0, offset).Weekday())
		entry, ok := entryFor(hours, day)
		if !ok {
			continue
		}
		open, err := UTCToLocal(entry.OpeningTime, now.Location())
		if err != nil {
			continue
		}
		if offset == 0 && open <= cur {
			continue
		}
		return Opening{Day: day, Time: open}, true
	}
	return Opening{}, false
}
