package domain

import (
	"fmt"
	"math"
)

// Fixed cutoffs of the low-pressure rule that are not part of ThresholdConfig.
const (
	lowPressureCloudPct   = 70
	lowPressurePrecipMm   = 10
	lowPressureFloodRHPct = 85
	msToKmh               = 3.6
	defaultPlaceName      = "your area"
)

// suppression records heavier alerts already issued during one run so that
// lighter advisories for the same phenomenon are skipped.
type suppression struct {
	floodIssued       bool
	winterStormIssued bool
}

// ruleInput is everything a rule may read. It is built once per run.
type ruleInput struct {
	current currentReadings
	agg     ForecastAggregates
	cfg     ThresholdConfig
	flags   FeatureFlags
	place   string
}

// rule evaluates one hazard and returns at most one alert.
type rule func(in *ruleInput, s *suppression) (Alert, bool)

// rules is the fixed evaluation order. A rule's index is also its timestamp
// offset in milliseconds.
var rules = []rule{
	windRule,
	lowPressureRule,
	fogRule,
	thunderstormRule,
	heavyRainRule,
	heavySnowRule,
	lightPrecipRule,
	iceRule,
	windChillRule,
	heatRule,
	wildfireRule,
	seismicRule,
}

func windRule(in *ruleInput, _ *suppression) (Alert, bool) {
	w := in.cfg.Wind
	c := in.current
	maxGust := in.agg.MaxGustMs

	var id string
	switch {
	case c.wind >= w.WarningMs || c.gust >= w.GustWarningMs || maxGust >= w.GustWarningMs:
		id = AlertHighWind
	case c.wind >= w.AdvisoryMs || c.gust >= w.GustAdvisoryMs || maxGust >= w.GustAdvisoryMs:
		id = AlertWindAdvisory
	default:
		return Alert{}, false
	}

	peak := maxFinite(maxFinite(maxFinite(math.Inf(-1), c.wind), c.gust), maxGust)
	return newAlert(id, fmt.Sprintf("Winds up to %.0f km/h are expected in %s.", math.Round(peak*msToKmh), in.place)), true
}

func lowPressureRule(in *ruleInput, _ *suppression) (Alert, bool) {
	c := in.current
	agg := in.agg

	if !(c.pressure <= in.cfg.LowPressureHpa) {
		return Alert{}, false
	}
	if !(c.clouds >= lowPressureCloudPct || agg.MaxCloudsPct >= in.cfg.CloudsHeavyPct) {
		return Alert{}, false
	}
	if !(agg.Rain24Mm >= lowPressurePrecipMm || agg.Snow24Mm >= lowPressurePrecipMm) {
		return Alert{}, false
	}

	if c.humidity >= lowPressureFloodRHPct || agg.Rain24Mm >= in.cfg.Flood.Rain24WatchMm {
		return newAlert(AlertFloodWatch, fmt.Sprintf(
			"A deep low (%.0f hPa) and saturated air could bring flooding to %s, with about %.0f mm of rain in the next 24 hours.",
			c.pressure, in.place, agg.Rain24Mm)), true
	}
	return newAlert(AlertLowPressure, fmt.Sprintf(
		"A low-pressure system (%.0f hPa) is bringing heavy cloud and about %.0f mm of precipitation to %s over the next 24 hours.",
		c.pressure, agg.Rain24Mm+agg.Snow24Mm, in.place)), true
}

// fogRule only looks at the current observation; fog is not derivable from
// the forecast.
func fogRule(in *ruleInput, _ *suppression) (Alert, bool) {
	f := in.cfg.Fog
	c := in.current

	if !(c.humidity >= f.HumidityMinPct && c.wind <= f.WindMaxMs && finite(c.visibility)) {
		return Alert{}, false
	}

	desc := fmt.Sprintf("Visibility has dropped to %.0f m in %s.", c.visibility, in.place)
	switch {
	case c.visibility <= f.VisWarningM:
		return newAlert(AlertDenseFogWarning, desc), true
	case c.visibility <= f.VisAdvisoryM:
		return newAlert(AlertFogAdvisory, desc), true
	default:
		return Alert{}, false
	}
}

func thunderstormRule(in *ruleInput, _ *suppression) (Alert, bool) {
	if !in.agg.ThunderstormLikely {
		return Alert{}, false
	}
	return newAlert(AlertThunderstormWatch, fmt.Sprintf(
		"Thunderstorms are forecast in %s within the next 24 hours.", in.place)), true
}

func heavyRainRule(in *ruleInput, s *suppression) (Alert, bool) {
	f := in.cfg.Flood
	agg := in.agg

	var id string
	switch {
	case agg.Rain24Mm >= f.Rain24WarnMm || agg.MaxRain3hMm >= f.Rain3hWarnMm:
		id = AlertFloodWarningRain
	case agg.Rain24Mm >= f.Rain24WatchMm || agg.MaxRain3hMm >= f.Rain3hWatchMm:
		id = AlertFloodWatchRain
	default:
		return Alert{}, false
	}

	s.floodIssued = true
	return newAlert(id, fmt.Sprintf(
		"About %.0f mm of rain is forecast for %s over 24 hours, with up to %.0f mm in 3 hours.",
		agg.Rain24Mm, in.place, agg.MaxRain3hMm)), true
}

func heavySnowRule(in *ruleInput, s *suppression) (Alert, bool) {
	sn := in.cfg.Snow
	agg := in.agg

	var id string
	switch {
	case agg.Snow24Mm >= sn.Snow24WarnMm || agg.MaxSnow3hMm >= sn.Snow3hWarnMm:
		id = AlertWinterStormWarning
	case agg.Snow24Mm >= sn.Snow24WatchMm || agg.MaxSnow3hMm >= sn.Snow3hWatchMm:
		id = AlertWinterStormWatch
	default:
		return Alert{}, false
	}

	s.winterStormIssued = true
	return newAlert(id, fmt.Sprintf(
		"About %.0f mm of snow (liquid equivalent) is forecast for %s over 24 hours.",
		agg.Snow24Mm, in.place)), true
}

// lightPrecipRule keeps the near-freezing comparisons exactly as ordered:
// current temp against the pivot, then forecast minimum against 0, then
// against the pivot.
func lightPrecipRule(in *ruleInput, s *suppression) (Alert, bool) {
	if s.floodIssued {
		return Alert{}, false
	}

	agg := in.agg
	pivot := in.cfg.WintryMixPivotC

	if agg.Rain24Mm > 0 {
		nearFreezing := in.current.temp <= pivot || agg.MinTempC <= 0 || agg.MinTempC <= pivot
		switch {
		case nearFreezing && agg.Snow24Mm == 0:
			return newAlert(AlertFreezingRainAdvisory, fmt.Sprintf(
				"About %.1f mm of rain falling near freezing may glaze surfaces in %s.", agg.Rain24Mm, in.place)), true
		case nearFreezing:
			return newAlert(AlertWintryMixAdvisory, fmt.Sprintf(
				"A mix of rain (%.1f mm) and snow (%.1f mm) is expected in %s.", agg.Rain24Mm, agg.Snow24Mm, in.place)), true
		case !s.winterStormIssued:
			return newAlert(AlertRainAdvisory, fmt.Sprintf(
				"About %.1f mm of rain is expected in %s over the next 24 hours.", agg.Rain24Mm, in.place)), true
		default:
			return Alert{}, false
		}
	}

	if agg.Rain24Mm == 0 && agg.Snow24Mm > 0 && !s.floodIssued && !s.winterStormIssued {
		return newAlert(AlertSnowAdvisory, fmt.Sprintf(
			"About %.1f mm of snow (liquid equivalent) is expected in %s.", agg.Snow24Mm, in.place)), true
	}
	return Alert{}, false
}

func iceRule(in *ruleInput, _ *suppression) (Alert, bool) {
	c := in.current
	agg := in.agg

	freezing := c.temp <= 0 || agg.MinTempC <= 0
	precip := agg.Rain24Mm > 0 || agg.Snow24Mm > 0 || agg.AnyPrecip
	humid := c.humidity >= in.cfg.IceHumidityPct || agg.MaxHumidityPct >= in.cfg.IceHumidityPct
	if !(freezing && precip && humid) {
		return Alert{}, false
	}

	coldest := minFinite(minFinite(math.Inf(1), c.temp), agg.MinTempC)
	return newAlert(AlertIcySurfaceAdvisory, fmt.Sprintf(
		"Temperatures down to %.0f°C with moisture around may leave icy surfaces in %s.", coldest, in.place)), true
}

func windChillRule(in *ruleInput, _ *suppression) (Alert, bool) {
	wc := in.cfg.WindChill
	feels := in.current.feelsLike

	var id string
	switch {
	case feels <= wc.WarningC:
		id = AlertWindChillWarning
	case feels <= wc.AdvisoryC:
		id = AlertWindChillAdvisory
	default:
		return Alert{}, false
	}
	return newAlert(id, fmt.Sprintf("It feels like %.0f°C in %s.", feels, in.place)), true
}

// heatRule rates the warmest forecast step, falling back to the current
// observation when no step has both temperature and humidity.
func heatRule(in *ruleInput, _ *suppression) (Alert, bool) {
	h := in.cfg.Heat

	temp, humidity := in.current.temp, in.current.humidity
	if in.agg.HasWarmest {
		temp, humidity = in.agg.WarmestTempC, in.agg.WarmestHumidityPct
	}
	if !finite(temp) || !finite(humidity) {
		return Alert{}, false
	}

	var id string
	switch {
	case temp >= h.WarningT && humidity >= h.WarningRH:
		id = AlertHeatWarning
	case temp >= h.AdvisoryT && humidity >= h.AdvisoryRH:
		id = AlertHeatAdvisory
	default:
		return Alert{}, false
	}
	return newAlert(id, fmt.Sprintf(
		"Temperatures up to %.0f°C with %.0f%% humidity are expected in %s.", temp, humidity, in.place)), true
}

func wildfireRule(in *ruleInput, _ *suppression) (Alert, bool) {
	if !in.flags.WildfireAlerts {
		return Alert{}, false
	}

	wf := in.cfg.Wildfire
	c := in.current
	if !finite(c.humidity) || !finite(c.temp) || !finite(c.wind) {
		return Alert{}, false
	}
	if !(c.humidity <= wf.RHMaxPct && c.temp >= wf.TMinC && c.wind >= wf.WindMinMs) {
		return Alert{}, false
	}
	return newAlert(AlertWildfireRisk, fmt.Sprintf(
		"Dry air (%.0f%% humidity), %.0f°C heat and %.0f km/h winds raise fire danger in %s.",
		c.humidity, c.temp, math.Round(c.wind*msToKmh), in.place)), true
}

func seismicRule(in *ruleInput, _ *suppression) (Alert, bool) {
	return newAlert(AlertSeismicInfo, fmt.Sprintf(
		"Earthquake and volcanic hazards cannot be derived from weather data for %s. Check your national geological survey for official alerts.",
		in.place)), true
}
