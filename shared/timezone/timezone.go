package timezone

import (
	"errors"
	"fmt"
	"shareit/config"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultLocation = "UTC"
)

var (
	appLocation = time.UTC

	ErrInvalidTime = errors.New("time must be ISO-8601, e.g. 2030-01-01T10:00:00")
)

func init() {
	appLocation = LoadLocation(config.Get().App.Timezone)
}

// LoadLocation resolves an IANA zone name and falls back to UTC when it is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultLocation
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts an instant to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Format renders an instant in the application timezone. Zero times render empty.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return ToAppTime(t).Format(layout)
}

// localLayouts are the zone-less ISO-8601 forms clients send for wall clock times.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Parse reads an RFC3339 timestamp, or a zone-less ISO-8601 one taken as wall clock
// time in the application timezone.
func Parse(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, appLocation); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}
