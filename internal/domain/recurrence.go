package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// isoWeekdays maps ISO weekday numbers (1 = Monday .. 7 = Sunday) to rrule
// weekdays.
var isoWeekdays = [...]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// NormalizeWeekdays validates ISO weekday numbers and returns them
// deduplicated and sorted.
func NormalizeWeekdays(weekdays []int) ([]int, error) {
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("%w: at least one weekday is required", ErrInvalidWeekday)
	}

	seen := make(map[int]struct{}, len(weekdays))
	out := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		if wd < 1 || wd > 7 {
			return nil, fmt.Errorf("%w: %d is outside 1 (Monday) .. 7 (Sunday)", ErrInvalidWeekday, wd)
		}
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		out = append(out, wd)
	}
	sort.Ints(out)
	return out, nil
}

// ExpandWeekly replicates template onto every calendar day in
// [windowStart, windowEnd] whose weekday is in weekdays.
//
// Days, weekdays and the clock time are all evaluated in the zone of
// template.Start; the template's own date only contributes that zone, the
// clock time and the duration. Occurrences are clipped to the window and
// dropped when nothing of them remains inside it. The result is sorted and
// in UTC.
func ExpandWeekly(template Interval, weekdays []int, windowStart, windowEnd time.Time) ([]Interval, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	days, err := NormalizeWeekdays(weekdays)
	if err != nil {
		return nil, err
	}
	if !windowStart.Before(windowEnd) {
		return nil, nil
	}

	loc := template.Start.Location()
	tmplStart := template.Start
	duration := template.Duration()

	byweekday := make([]rrule.Weekday, 0, len(days))
	for _, wd := range days {
		byweekday = append(byweekday, isoWeekdays[wd-1])
	}

	firstDay := dateIn(windowStart, loc)
	lastDay := dateIn(windowEnd, loc)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      rrule.MO,
		Byweekday: byweekday,
		Dtstart:   firstDay,
		Until:     lastDay,
	})
	if err != nil {
		return nil, err
	}

	out := make([]Interval, 0, 16)
	for _, day := range rule.Between(firstDay, lastDay, true) {
		day = day.In(loc)
		start := time.Date(
			day.Year(),
			day.Month(),
			day.Day(),
			tmplStart.Hour(),
			tmplStart.Minute(),
			tmplStart.Second(),
			tmplStart.Nanosecond(),
			loc,
		)
		occ, ok := Interval{Start: start, End: start.Add(duration)}.Clip(windowStart, windowEnd)
		if !ok {
			continue
		}
		out = append(out, occ.UTC())
	}

	return out, nil
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
