// Package timezone resolves the application zone and venue zones. Venue calendar days are always
// computed in the venue's own location, never in the server's.
package timezone

import (
	"sync"
	"time"

	"venuebook/config"

	"github.com/rs/zerolog/log"
)

var (
	appOnce     sync.Once
	appLocation = time.UTC

	locations sync.Map
)

func app() *time.Location {
	appOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC as default")
			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load application timezone, falling back to UTC")
			return
		}

		appLocation = loc
		log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
	})

	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(app())
}

func GetLocation() *time.Location {
	return app()
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(app()).Format(layout)
}

// LoadLocation resolves a venue's IANA name, falling back to the application timezone when empty or unknown.
// Resolved zones are kept for the life of the process.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return GetLocation()
	}

	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location) //nolint:forcetypeassert
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("Unknown timezone, using application timezone")
		return GetLocation()
	}

	locations.Store(name, loc)

	return loc
}

// Today returns midnight of the clock's current date in loc.
func Today(clock Clock, loc *time.Location) time.Time {
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// DateIn parses a calendar date and anchors it at midnight in loc.
func DateIn(layout, value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layout, value, loc)
}
