package domain

import (
	"encoding/json"
	"fmt"
)

// WeatherBundle is one location's observation and forecast as published by
// the collector.
type WeatherBundle struct {
	Observation *Observation `json:"observation"`
	Forecast    Forecast     `json:"forecast"`
}

// ParseRawEvent deserializes a RawEvent's value into a WeatherBundle. Only
// invalid JSON is an error; missing blocks are left for the engine to treat as
// absent data.
func ParseRawEvent(raw RawEvent) (WeatherBundle, error) {
	var bundle WeatherBundle
	if err := json.Unmarshal(raw.Value, &bundle); err != nil {
		return WeatherBundle{}, fmt.Errorf("parse raw event: %w", err)
	}
	return bundle, nil
}
