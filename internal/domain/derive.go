package domain

import (
	"strings"
	"time"
)

// Engine derives alerts with a fixed threshold set. It is a value type with
// no mutable state and may be shared across goroutines.
type Engine struct {
	thresholds ThresholdConfig
	flags      FeatureFlags
}

// NewEngine creates an Engine. Callers should Validate the thresholds first.
func NewEngine(thresholds ThresholdConfig, flags FeatureFlags) Engine {
	return Engine{thresholds: thresholds, flags: flags}
}

// DefaultEngine uses DefaultThresholds and DefaultFeatureFlags.
func DefaultEngine() Engine {
	return NewEngine(DefaultThresholds(), DefaultFeatureFlags())
}

// Derive evaluates every rule in order and returns the alerts that fired,
// terminated by the seismic disclaimer. An observation without a "main" block
// or without any "weather" entry yields an empty, non-nil list.
func (e Engine) Derive(obs *Observation, forecast Forecast) []Alert {
	if obs == nil || obs.Main == nil || len(obs.Weather) == 0 {
		return []Alert{}
	}

	in := ruleInput{
		current: readCurrent(obs),
		agg:     AggregateForecast(forecast),
		cfg:     e.thresholds,
		flags:   e.flags,
		place:   placeName(obs),
	}

	var s suppression
	anchor := time.Unix(obs.Dt, 0).UTC()
	alerts := make([]Alert, 0, 4)

	for i, r := range rules {
		a, ok := r(&in, &s)
		if !ok {
			continue
		}
		a.Timestamp = anchor.Add(time.Duration(i) * time.Millisecond)
		alerts = append(alerts, a)
	}
	return alerts
}

// DeriveAlerts runs the default engine.
func DeriveAlerts(obs *Observation, forecast Forecast) []Alert {
	return DefaultEngine().Derive(obs, forecast)
}

func placeName(obs *Observation) string {
	if name := strings.TrimSpace(obs.Name); name != "" {
		return name
	}
	return defaultPlaceName
}
