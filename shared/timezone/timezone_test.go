package timezone_test

import (
	"nightlife/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2026-11-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-11-01", timezone.Format(parsed, time.DateOnly))
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
	}{
		{name: "late evening", input: time.Date(2026, 11, 1, 23, 59, 59, 0, timezone.GetLocation())},
		{name: "just after midnight", input: time.Date(2026, 11, 1, 0, 0, 1, 0, timezone.GetLocation())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timezone.StartOfDay(tt.input)

			assert.Equal(t, 0, got.Hour())
			assert.Equal(t, 0, got.Minute())
			assert.Equal(t, 0, got.Second())
			assert.Equal(t, tt.input.Day(), got.Day())
		})
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.False(t, timezone.Now().Before(today))
	assert.True(t, timezone.Now().Sub(today) < 24*time.Hour)
}

func TestSet(t *testing.T) {
	original := timezone.GetLocation()
	t.Cleanup(func() { timezone.Set(original.String()) })

	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "known zone", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
		{name: "unknown zone", zone: "Mars/Olympus", want: "UTC"},
		{name: "empty", zone: "", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Set(tt.zone).String())
			assert.Equal(t, tt.want, timezone.GetLocation().String())
		})
	}
}

func TestParseDateIsLocalMidnight(t *testing.T) {
	original := timezone.GetLocation()
	t.Cleanup(func() { timezone.Set(original.String()) })

	timezone.Set("Asia/Jakarta")

	date, err := timezone.ParseDate("2026-11-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-10-31T17:00:00Z", date.UTC().Format(time.RFC3339))

	_, err = timezone.ParseDate("01/11/2026")
	assert.Error(t, err)
}

func TestFormatPtr(t *testing.T) {
	assert.Nil(t, timezone.FormatPtr(nil, time.DateOnly))

	at := time.Date(2026, 11, 1, 12, 0, 0, 0, timezone.GetLocation())
	got := timezone.FormatPtr(&at, time.DateOnly)

	require.NotNil(t, got)
	assert.Equal(t, "2026-11-01", *got)
}
