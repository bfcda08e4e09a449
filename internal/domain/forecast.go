package domain

import "math"

// forecastHorizon is the number of 3 hour steps in the 24h window.
const forecastHorizon = 8

// ForecastAggregates are 24h rollups over the first forecastHorizon steps.
// Maxima are -Inf and minima +Inf when no step had a finite value.
type ForecastAggregates struct {
	Rain24Mm    float64
	Snow24Mm    float64
	MaxRain3hMm float64
	MaxSnow3hMm float64

	MaxGustMs      float64
	MaxTempC       float64
	MinTempC       float64
	MaxHumidityPct float64
	MaxCloudsPct   float64

	ThunderstormLikely bool
	AnyPrecip          bool

	// Warmest step with both temperature and humidity defined.
	WarmestTempC       float64
	WarmestHumidityPct float64
	HasWarmest         bool
}

// AggregateForecast computes the 24h rollups. A nil or empty forecast yields
// zero sums and undetermined extrema.
func AggregateForecast(forecast Forecast) ForecastAggregates {
	agg := ForecastAggregates{
		MaxGustMs:      math.Inf(-1),
		MaxTempC:       math.Inf(-1),
		MinTempC:       math.Inf(1),
		MaxHumidityPct: math.Inf(-1),
		MaxCloudsPct:   math.Inf(-1),
	}

	steps := forecast
	if len(steps) > forecastHorizon {
		steps = steps[:forecastHorizon]
	}

	for i := range steps {
		step := &steps[i]

		rain := precipMm(step.Rain)
		snow := precipMm(step.Snow)
		agg.Rain24Mm += rain
		agg.Snow24Mm += snow
		agg.MaxRain3hMm = math.Max(agg.MaxRain3hMm, rain)
		agg.MaxSnow3hMm = math.Max(agg.MaxSnow3hMm, snow)
		if rain != 0 || snow != 0 {
			agg.AnyPrecip = true
		}

		agg.MaxGustMs = maxFinite(agg.MaxGustMs, value(step.Wind.Gust))
		agg.MaxCloudsPct = maxFinite(agg.MaxCloudsPct, value(step.Clouds.All))

		if step.Main != nil {
			temp := value(step.Main.Temp)
			humidity := value(step.Main.Humidity)
			agg.MaxTempC = maxFinite(agg.MaxTempC, temp)
			agg.MinTempC = minFinite(agg.MinTempC, temp)
			agg.MaxHumidityPct = maxFinite(agg.MaxHumidityPct, humidity)

			if finite(temp) && finite(humidity) && (!agg.HasWarmest || temp > agg.WarmestTempC) {
				agg.WarmestTempC = temp
				agg.WarmestHumidityPct = humidity
				agg.HasWarmest = true
			}
		}

		for _, c := range step.Weather {
			if isThunderstormCode(c.ID) {
				agg.ThunderstormLikely = true
			}
		}
	}

	return agg
}

// isThunderstormCode reports whether an OpenWeather condition id is in the
// thunderstorm group [200, 232).
func isThunderstormCode(id int) bool {
	return id >= 200 && id < 232
}

// precipMm returns a step accumulation, 0 when missing or non-finite.
func precipMm(p *Precip) float64 {
	if p == nil {
		return 0
	}
	v := value(p.ThreeHour)
	if !finite(v) {
		return 0
	}
	return v
}

func maxFinite(acc, v float64) float64 {
	if finite(v) && v > acc {
		return v
	}
	return acc
}

func minFinite(acc, v float64) float64 {
	if finite(v) && v < acc {
		return v
	}
	return acc
}
