package temporal

import (
	"time"

	"tripfeat/utils"
)

// TimeOfDay is the bucket a pickup hour falls into.
type TimeOfDay string

const (
	EarlyMorning TimeOfDay = "EarlyMorning"
	Morning      TimeOfDay = "Morning"
	Afternoon    TimeOfDay = "Afternoon"
	Night        TimeOfDay = "Night"
)

// HourWindow is an open hour interval: an hour matches only when it is
// strictly between After and Before. The boundary hours themselves never
// match.
type HourWindow struct {
	After  int
	Before int
}

func (w HourWindow) Contains(hour int) bool {
	return hour > w.After && hour < w.Before
}

// Calendar carries the date-dependent configuration of the extractor: the
// holiday set for the operative period and the rush-hour windows for
// weekdays and weekends. The holiday set bounds the valid operating date
// range; running the pipeline outside it silently yields is_holiday=false.
type Calendar struct {
	holidays       utils.DateSet
	weekdayWindows []HourWindow
	weekendWindows []HourWindow
}

func NewCalendar(holidays []time.Time, weekdayWindows []HourWindow, weekendWindows []HourWindow) Calendar {
	holidaySet := make(utils.DateSet, len(holidays))
	for _, day := range holidays {
		holidaySet.Add(day)
	}
	return Calendar{
		holidays:       holidaySet,
		weekdayWindows: weekdayWindows,
		weekendWindows: weekendWindows,
	}
}

// Features struct that contains the categorical features of one timestamp
// + Weekday: weekday name in the timestamp's own location
// + IsWeekday: false only on Saturday and Sunday
// + IsRushHour: whether the hour falls strictly inside a rush-hour window
// + IsHoliday: whether the calendar date is in the holiday set
// + TimeOfDay: one of the four hour buckets
type Features struct {
	Weekday    string
	IsWeekday  bool
	IsRushHour bool
	IsHoliday  bool
	TimeOfDay  TimeOfDay
}

// Extract decomposes a timestamp into its categorical features using the
// timestamp's associated location for all calendar arithmetic.
func Extract(t time.Time, calendar Calendar) Features {
	weekday := t.Weekday()
	isWeekday := weekday != time.Saturday && weekday != time.Sunday

	windows := calendar.weekendWindows
	if isWeekday {
		windows = calendar.weekdayWindows
	}

	hour := t.Hour()
	isRushHour := false
	for _, window := range windows {
		if window.Contains(hour) {
			isRushHour = true
			break
		}
	}

	return Features{
		Weekday:    weekday.String(),
		IsWeekday:  isWeekday,
		IsRushHour: isRushHour,
		IsHoliday:  calendar.holidays.Contains(t),
		TimeOfDay:  bucketOf(hour),
	}
}

func bucketOf(hour int) TimeOfDay {
	switch {
	case hour < 6:
		return EarlyMorning
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Night
	}
}
