// Package availability maintains a caller's available time ranges inside a
// fixed window: explicit and weekly-recurring ranges are merged in, booked
// ranges are cut out, and the result can be queried in any UTC offset.
package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"availability/internal/domain"
	"availability/internal/isotime"
)

// ValidationError reports a rejected argument. Kind is one of the domain
// sentinels (domain.ErrInvalidRange, domain.ErrInvalidWeekday,
// domain.ErrInvalidTimestamp, domain.ErrInvalidOffset) and is matched by
// errors.Is.
type ValidationError struct {
	Field  string
	Reason string
	Kind   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func validationError(field string, kind error, reason string) error {
	return &ValidationError{Field: field, Reason: reason, Kind: kind}
}

// Availability is one available range rendered in the requested offset.
type Availability struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule is a set of available ranges bounded by a window fixed at
// construction. The window only bounds weekly recurrence; explicit ranges
// may fall outside it.
//
// Every method validates all of its arguments before mutating, so a failed
// call leaves the schedule unchanged. A Schedule is not safe for concurrent
// use; share a Clone with readers instead.
type Schedule struct {
	windowStart time.Time
	windowEnd   time.Time
	set         domain.IntervalSet
}

func New(windowStart, windowEnd string) (*Schedule, error) {
	start, err := parseTimestamp("window_start", windowStart)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp("window_end", windowEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, validationError("window_end", domain.ErrInvalidRange, "must not be before window_start")
	}

	return &Schedule{windowStart: start, windowEnd: end}, nil
}

// Window returns the bounds given at construction, in their source offsets.
func (s *Schedule) Window() (time.Time, time.Time) {
	return s.windowStart, s.windowEnd
}

func (s *Schedule) Add(start, end string) error {
	iv, err := parseRange(start, end)
	if err != nil {
		return err
	}
	return s.set.Add(iv)
}

// AddWeeklyRecurring adds the range start..end on every day of the window
// whose weekday (1 = Monday .. 7 = Sunday, evaluated in start's offset) is
// listed. Only the clock time, offset and duration of start..end are used;
// their dates may lie anywhere, including before the window.
func (s *Schedule) AddWeeklyRecurring(start, end string, weekdays []int) error {
	template, err := parseRange(start, end)
	if err != nil {
		return err
	}

	occs, err := domain.ExpandWeekly(template, weekdays, s.windowStart, s.windowEnd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWeekday) {
			reason := strings.TrimPrefix(err.Error(), domain.ErrInvalidWeekday.Error()+": ")
			return validationError("weekdays", domain.ErrInvalidWeekday, reason)
		}
		return err
	}

	for _, occ := range occs {
		if err := s.set.Add(occ); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schedule) Remove(start, end string) error {
	iv, err := parseRange(start, end)
	if err != nil {
		return err
	}
	return s.set.Remove(iv)
}

// Query returns every available range in ascending order, rendered in the
// given offset. The offset may be bare ("-05:00") or taken from a full
// timestamp ("2000-01-01T00:00:00-04:00"); mo.None means
// isotime.DefaultOffset.
func (s *Schedule) Query(offset mo.Option[string]) ([]Availability, error) {
	arg := offset.OrElse(isotime.DefaultOffset)
	loc, err := isotime.ParseOffset(arg)
	if err != nil {
		return nil, validationError("offset", domain.ErrInvalidOffset, fmt.Sprintf("%q is not an offset or a timestamp with an offset", arg))
	}

	ivs := s.set.Intervals()
	out := make([]Availability, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, Availability{
			Start: isotime.Format(iv.Start, loc),
			End:   isotime.Format(iv.End, loc),
		})
	}
	return out, nil
}

// Contains reports whether start..end lies entirely within the available
// ranges.
func (s *Schedule) Contains(start, end string) (bool, error) {
	iv, err := parseRange(start, end)
	if err != nil {
		return false, err
	}
	return s.set.Contains(iv)
}

// Intervals returns a copy of the stored ranges in UTC.
func (s *Schedule) Intervals() []domain.Interval {
	return s.set.Intervals()
}

// Clone returns an independent copy.
func (s *Schedule) Clone() *Schedule {
	return &Schedule{
		windowStart: s.windowStart,
		windowEnd:   s.windowEnd,
		set:         s.set.Clone(),
	}
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := isotime.Parse(value)
	if err != nil {
		return time.Time{}, validationError(field, domain.ErrInvalidTimestamp, fmt.Sprintf("%q is not an ISO-8601 timestamp", value))
	}
	return t, nil
}

func parseRange(start, end string) (domain.Interval, error) {
	s, err := parseTimestamp("start", start)
	if err != nil {
		return domain.Interval{}, err
	}
	e, err := parseTimestamp("end", end)
	if err != nil {
		return domain.Interval{}, err
	}

	iv, err := domain.NewInterval(s, e)
	if err != nil {
		return domain.Interval{}, validationError("end", domain.ErrInvalidRange, fmt.Sprintf("%s must be after start %s", end, start))
	}
	return iv, nil
}
