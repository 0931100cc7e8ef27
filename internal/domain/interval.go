package domain

import (
	"fmt"
	"time"
)

// Interval is a closed time range with Start strictly before End.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRange, i.Start.Format(time.RFC3339Nano), i.End.Format(time.RFC3339Nano))
	}
	return nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether o lies entirely within i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Overlaps reports whether i and o share more than a boundary instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Touches reports whether i and o overlap or meet at a boundary, i.e.
// whether their union is a single interval.
func (i Interval) Touches(o Interval) bool {
	return !i.Start.After(o.End) && !o.Start.After(i.End)
}

// Clip returns the part of i within [lo, hi]. ok is false when nothing of
// positive length remains.
func (i Interval) Clip(lo, hi time.Time) (Interval, bool) {
	out := i
	if out.Start.Before(lo) {
		out.Start = lo
	}
	if out.End.After(hi) {
		out.End = hi
	}
	if !out.Start.Before(out.End) {
		return Interval{}, false
	}
	return out, true
}

// UTC returns i with both ends in UTC.
func (i Interval) UTC() Interval {
	return Interval{Start: i.Start.UTC(), End: i.End.UTC()}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start.Format(time.RFC3339Nano), i.End.Format(time.RFC3339Nano))
}
