package isotime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantUTC    time.Time
		wantOffset int
	}{
		{
			name:       "rfc3339 with offset",
			input:      "2024-01-01T09:00:00-05:00",
			wantUTC:    time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
			wantOffset: -5 * 3600,
		},
		{
			name:       "zulu",
			input:      "2024-01-01T09:00:00Z",
			wantUTC:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			wantOffset: 0,
		},
		{
			name:       "fractional seconds",
			input:      "2024-01-01T09:00:00.250+01:00",
			wantUTC:    time.Date(2024, 1, 1, 8, 0, 0, 250_000_000, time.UTC),
			wantOffset: 3600,
		},
		{
			name:       "compact offset",
			input:      "2024-01-01T09:00:00+0530",
			wantUTC:    time.Date(2024, 1, 1, 3, 30, 0, 0, time.UTC),
			wantOffset: 5*3600 + 30*60,
		},
		{
			name:       "hour only offset",
			input:      "2024-01-01T09:00:00-03",
			wantUTC:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			wantOffset: -3 * 3600,
		},
		{
			name:       "minute precision",
			input:      "2024-01-01T09:30+00:00",
			wantUTC:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
			wantOffset: 0,
		},
		{
			name:       "no offset reads as utc",
			input:      "2024-01-01T09:00:00",
			wantUTC:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			wantOffset: 0,
		},
		{
			name:       "date only",
			input:      "2024-01-01",
			wantUTC:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.wantUTC), "got %v, want %v", got, tt.wantUTC)

			name, off := got.Zone()
			assert.Equal(t, tt.wantOffset, off)
			assert.Equal(t, formatOffset(tt.wantOffset), name)
			assert.NotEqual(t, time.Local, got.Location())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2024-13-01T00:00:00Z", "2024-01-01T25:00:00Z", "01/02/2024"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTimestamp)
		})
	}
}

func TestFormat(t *testing.T) {
	instant := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01T14:00:00+00:00", Format(instant, nil))
	assert.Equal(t, "2024-01-01T09:00:00-05:00", Format(instant, FixedZone(-5*3600)))
	assert.Equal(t, "2024-01-01T19:30:00+05:30", Format(instant, FixedZone(5*3600+30*60)))
	assert.Equal(t, "2024-01-01T14:00:00.5+00:00", Format(instant.Add(500*time.Millisecond), FixedZone(0)))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	instant := time.Date(2024, 3, 10, 6, 59, 59, 123456789, time.UTC)
	for _, offset := range []int{0, -5 * 3600, 9*3600 + 30*60, -12 * 3600, 14 * 3600} {
		s := Format(instant, FixedZone(offset))
		got, err := Parse(s)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(instant), "%s parsed to %v", s, got)
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		arg  string
		want int
	}{
		{arg: "-05:00", want: -5 * 3600},
		{arg: "+05:30", want: 5*3600 + 30*60},
		{arg: "+0930", want: 9*3600 + 30*60},
		{arg: "-04", want: -4 * 3600},
		{arg: "Z", want: 0},
		{arg: DefaultOffset, want: 0},
		{arg: "2000-01-01T00:00:00-04:00", want: -4 * 3600},
		{arg: "2000-01-01T00:00:00Z", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			loc, err := ParseOffset(tt.arg)
			require.NoError(t, err)
			_, off := time.Date(2000, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.want, off)
		})
	}
}

func TestParseOffset_Invalid(t *testing.T) {
	for _, arg := range []string{"", "EST", "+25:00", "-05:75", "5:00", "2000-01-01T00:00:00", "garbage-05:00"} {
		t.Run(arg, func(t *testing.T) {
			_, err := ParseOffset(arg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOffset)
		})
	}
}

func TestClassifyOffset(t *testing.T) {
	bare, err := ClassifyOffset("-05:00")
	require.NoError(t, err)
	assert.True(t, bare.IsLeft())

	stamp, err := ClassifyOffset("2000-01-01T00:00:00-04:00")
	require.NoError(t, err)
	assert.True(t, stamp.IsRight())
	ts, ok := stamp.Right()
	require.True(t, ok)
	assert.Equal(t, 2000, ts.Year())
}
