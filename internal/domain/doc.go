// Package domain derives weather hazard alerts from an OpenWeather-style
// observation and its short-range forecast.
//
// # Data Source
//
// Weather bundles are produced upstream by a collector that polls the
// OpenWeather current-weather and 5 day / 3 hour forecast endpoints and
// publishes one JSON document per location to the Kafka source topic:
//
//	{"observation": {...current weather...}, "forecast": {"list": [...]}}
//
// The forecast may also be a bare array of steps. A malformed forecast decodes
// as empty so forecast-dependent rules simply do not fire.
//
// # Units
//
//	Temperature:    °C (units=metric)
//	Wind and gust:  m/s; descriptions convert to km/h
//	Pressure:       hPa
//	Visibility:     meters, optional
//	Precipitation:  mm over the 3 hour step; snow is liquid equivalent
//
// Missing or non-finite readings never count as zero. A rule whose inputs are
// absent does not fire.
//
// # 24h Window
//
// Only the first 8 forecast steps are aggregated (8 × 3h ≈ 24h). Sums treat a
// missing precipitation field as 0. Maxima default to -Inf and minima to +Inf
// when no step carries a finite value; every comparison against those
// sentinels is false.
//
// # Rule Order
//
// Rules run in a fixed order and emit at most one alert each:
//
//	 0 wind / gust            high-wind | wind-advisory
//	 1 low pressure           flood-watch | low-pressure
//	 2 fog                    dense-fog-warning | fog-advisory
//	 3 thunderstorm           thunderstorm-watch
//	 4 heavy rain             flood-warning-rain | flood-watch-rain     (sets flood)
//	 5 heavy snow             winter-storm-warning | winter-storm-watch (sets winter)
//	 6 light precipitation    freezing-rain | wintry-mix | rain | snow advisory
//	 7 ice                    icy-surface-advisory
//	 8 wind chill             wind-chill-warning | wind-chill-advisory
//	 9 heat                   heat-warning | heat-advisory
//	10 wildfire               wildfire-risk (feature flagged)
//	11 disclaimer             seismic-info
//
// Rule 6 is skipped once a heavy-rain alert fired, and its rain and snow
// branches are skipped once a winter storm alert fired. Each alert timestamp
// is the observation time plus its rule position in milliseconds, so output
// is byte-stable for identical input.
//
// # Severity
//
// Info < Advisory < Watch < Warning. Warning thresholds are validated to be at
// least as severe as advisory thresholds for the same hazard.
package domain
