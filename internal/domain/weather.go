package domain

import (
	"encoding/json"
	"math"
)

// Coord is a WGS-84 latitude/longitude pair as reported by OpenWeather.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the OpenWeather "weather" array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"` // Clear, Clouds, Rain, Snow, Drizzle, Mist, Fog, Thunderstorm, ...
	Description string `json:"description,omitempty"`
}

// Readings holds the "main" block. Every field is optional.
type Readings struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"` // %
	Pressure  *float64 `json:"pressure,omitempty"` // hPa
}

// Wind holds sustained speed and gust in m/s.
type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
	Gust  *float64 `json:"gust,omitempty"`
}

// Clouds holds cloud cover in percent.
type Clouds struct {
	All *float64 `json:"all,omitempty"`
}

// Precip holds a 3 hour accumulation in mm.
type Precip struct {
	ThreeHour *float64 `json:"3h,omitempty"`
}

// Observation is a current-weather snapshot.
type Observation struct {
	Coord      *Coord      `json:"coord,omitempty"`
	Weather    []Condition `json:"weather"`
	Main       *Readings   `json:"main"`
	Visibility *float64    `json:"visibility,omitempty"` // meters
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Dt         int64       `json:"dt"` // epoch seconds
	Name       string      `json:"name,omitempty"`
}

// PrimaryCondition returns the text category of the first weather entry, or
// "" when there is none.
func (o *Observation) PrimaryCondition() string {
	if o == nil || len(o.Weather) == 0 {
		return ""
	}
	return o.Weather[0].Main
}

// ForecastStep is one 3 hour forecast entry.
type ForecastStep struct {
	Dt      int64       `json:"dt"`
	Main    *Readings   `json:"main,omitempty"`
	Weather []Condition `json:"weather,omitempty"`
	Wind    Wind        `json:"wind"`
	Clouds  Clouds      `json:"clouds"`
	Rain    *Precip     `json:"rain,omitempty"`
	Snow    *Precip     `json:"snow,omitempty"`
}

// Forecast is an ordered series of forecast steps. It decodes from either a
// JSON array of steps or an object exposing a "list" array. Anything else
// decodes as an empty forecast rather than an error.
type Forecast []ForecastStep

func (f *Forecast) UnmarshalJSON(data []byte) error {
	var steps []ForecastStep
	if err := json.Unmarshal(data, &steps); err == nil {
		*f = steps
		return nil
	}

	var wrapped struct {
		List []ForecastStep `json:"list"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*f = wrapped.List
		return nil
	}

	*f = nil
	return nil
}

// Float returns a pointer to v, for building readings in code.
func Float(v float64) *float64 {
	return &v
}

// value dereferences an optional reading, mapping absent and non-finite values
// to NaN so every threshold comparison against it is false.
func value(p *float64) float64 {
	if p == nil || !finite(*p) {
		return math.NaN()
	}
	return *p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// currentReadings flattens the observation into plain floats, NaN for absent.
type currentReadings struct {
	temp       float64
	feelsLike  float64
	humidity   float64
	pressure   float64
	wind       float64
	gust       float64
	clouds     float64
	visibility float64
}

func readCurrent(o *Observation) currentReadings {
	r := currentReadings{
		temp:       math.NaN(),
		feelsLike:  math.NaN(),
		humidity:   math.NaN(),
		pressure:   math.NaN(),
		wind:       value(o.Wind.Speed),
		gust:       value(o.Wind.Gust),
		clouds:     value(o.Clouds.All),
		visibility: value(o.Visibility),
	}
	if o.Main != nil {
		r.temp = value(o.Main.Temp)
		r.feelsLike = value(o.Main.FeelsLike)
		r.humidity = value(o.Main.Humidity)
		r.pressure = value(o.Main.Pressure)
	}
	return r
}
