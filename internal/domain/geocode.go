package domain

import (
	"context"
	"log/slog"
	"strings"
)

// EnrichPlaceName fills an empty observation name by reverse geocoding its
// coordinates. A nil geocoder, missing coordinates, a lookup error, or an
// empty result all leave the bundle unchanged (graceful degradation).
func EnrichPlaceName(ctx context.Context, bundle WeatherBundle, geocoder Geocoder, logger *slog.Logger) WeatherBundle {
	obs := bundle.Observation
	if geocoder == nil || obs == nil || obs.Coord == nil {
		return bundle
	}
	if strings.TrimSpace(obs.Name) != "" {
		return bundle
	}
	if obs.Coord.Lat == 0 && obs.Coord.Lon == 0 {
		return bundle
	}

	result, err := geocoder.ReverseGeocode(ctx, obs.Coord.Lat, obs.Coord.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", obs.Coord.Lat,
			"lon", obs.Coord.Lon,
			"error", err,
		)
		return bundle
	}
	if result.PlaceName == "" {
		return bundle
	}

	// Copy so the caller's observation is not mutated.
	enriched := *obs
	enriched.Name = result.PlaceName
	bundle.Observation = &enriched
	return bundle
}
