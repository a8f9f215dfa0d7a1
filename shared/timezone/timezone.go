package timezone

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC
	clock       = time.Now
)

// Load sets the hotel's timezone from an IANA name. An empty name keeps UTC.
func Load(name string) error {
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE is not set, stays and audit times use UTC")

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", name, err)
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Hotel timezone loaded")

	return nil
}

// SetLocation replaces the hotel's timezone until restore is called. Tests only.
func SetLocation(loc *time.Location) (restore func()) {
	previous := appLocation
	appLocation = loc

	return func() { appLocation = previous }
}

// Now is the current time in the hotel's timezone.
func Now() time.Time {
	return clock().In(appLocation)
}

// Freeze pins Now to t until the returned restore func is called. Tests only.
func Freeze(t time.Time) (restore func()) {
	previous := clock
	clock = func() time.Time { return t }

	return func() { clock = previous }
}

// StartOfDay truncates t to local midnight. Check-in dates are compared at this granularity.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.In(appLocation).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value as a wall-clock time in the hotel's timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return t.In(appLocation).Format(layout)
}
