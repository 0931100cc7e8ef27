// Package isotime parses and formats the ISO-8601 timestamps and UTC offset
// strings exchanged with schedule callers.
//
// Every parsed time carries a fixed zone equal to its source offset. Named
// locations (including time.Local) never leak out of this package, so
// weekday and clock arithmetic on a parsed value is free of DST rules.
package isotime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidOffset    = errors.New("invalid offset")
)

// DefaultOffset is the output offset used when a caller names none.
const DefaultOffset = "+00:00"

const outputLayout = "2006-01-02T15:04:05.999999999-07:00"

var zonedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07",
}

// Offset-less forms are read as UTC.
var plainLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2})(?::?(\d{2}))?$`)

// Parse reads an ISO-8601 timestamp. Fractional seconds are accepted after
// the seconds field.
func Parse(s string) (time.Time, error) {
	t, _, err := parse(s)
	return t, err
}

func parse(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty string", ErrInvalidTimestamp)
	}

	for _, layout := range zonedLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		_, off := t.Zone()
		return t.In(FixedZone(off)), true, nil
	}
	for _, layout := range plainLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.In(FixedZone(0)), false, nil
	}

	return time.Time{}, false, fmt.Errorf("%w: %q is not an ISO-8601 timestamp", ErrInvalidTimestamp, s)
}

// Format renders t in loc. UTC renders as "+00:00", never "Z", and trailing
// zero fractional digits are dropped.
func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = FixedZone(0)
	}
	return t.In(loc).Format(outputLayout)
}

// FixedZone returns a zone named after its offset, e.g. "-05:00".
func FixedZone(offsetSeconds int) *time.Location {
	return time.FixedZone(formatOffset(offsetSeconds), offsetSeconds)
}

func formatOffset(offsetSeconds int) string {
	sign := '+'
	if offsetSeconds < 0 {
		sign = '-'
		offsetSeconds = -offsetSeconds
	}
	minutes := offsetSeconds / 60
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// OffsetArg is an offset argument after classification: either a bare
// offset string (Left) or a full timestamp carrying an offset (Right).
type OffsetArg = mo.Either[string, time.Time]

// ClassifyOffset decides which form arg takes. A timestamp without an offset
// suffix is rejected since there is nothing to extract from it.
func ClassifyOffset(arg string) (OffsetArg, error) {
	arg = strings.TrimSpace(arg)
	if isBareOffset(arg) {
		return mo.Left[string, time.Time](arg), nil
	}

	t, zoned, err := parse(arg)
	if err != nil || !zoned {
		return OffsetArg{}, fmt.Errorf("%w: %q is neither an offset nor a timestamp with an offset", ErrInvalidOffset, arg)
	}
	return mo.Right[string, time.Time](t), nil
}

// ParseOffset resolves a bare offset ("-05:00", "+0530", "+05", "Z") or a
// full timestamp ("2000-01-01T00:00:00-04:00") to a fixed zone.
func ParseOffset(arg string) (*time.Location, error) {
	v, err := ClassifyOffset(arg)
	if err != nil {
		return nil, err
	}
	if t, ok := v.Right(); ok {
		return t.Location(), nil
	}
	s, _ := v.Left()
	return offsetLocation(s)
}

func isBareOffset(s string) bool {
	return s == "Z" || s == "z" || offsetPattern.MatchString(s)
}

func offsetLocation(s string) (*time.Location, error) {
	if s == "Z" || s == "z" {
		return FixedZone(0), nil
	}

	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("%w: %q is out of range", ErrInvalidOffset, s)
	}

	secs := hours*3600 + minutes*60
	if m[1] == "-" {
		secs = -secs
	}
	return FixedZone(secs), nil
}
