package timezone

import (
	"nightlife/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation atomic.Pointer[time.Location]

func init() {
	appLocation.Store(time.UTC)
	Set(config.Get().App.Timezone)
}

// Set switches the application zone. Empty or unknown names select UTC.
func Set(name string) *time.Location {
	loc := time.UTC

	switch {
	case name == "":
		log.Warn().Msg("no timezone configured, using UTC")
	default:
		loaded, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

			break
		}

		loc = loaded
	}

	appLocation.Store(loc)

	return loc
}

func GetLocation() *time.Location {
	return appLocation.Load()
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse interprets value as wall-clock time in the application zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseDate parses a YYYY-MM-DD calendar day as local midnight.
func ParseDate(value string) (time.Time, error) {
	return Parse(time.DateOnly, value)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// FormatPtr is Format for optional timestamps.
func FormatPtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}

	formatted := Format(*t, layout)

	return &formatted
}

func Today() time.Time {
	return StartOfDay(Now())
}

func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}
