package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ThresholdConfig holds every numeric cutoff used by the rules. Values are
// copied into an Engine, so a config is never shared mutable state.
type ThresholdConfig struct {
	Wind            WindThresholds      `json:"wind" toml:"wind" yaml:"wind"`
	LowPressureHpa  float64             `json:"low_pressure_hpa" toml:"low_pressure_hpa" yaml:"low_pressure_hpa" validate:"gt=0"`
	CloudsHeavyPct  float64             `json:"clouds_heavy_pct" toml:"clouds_heavy_pct" yaml:"clouds_heavy_pct" validate:"min=0,max=100"`
	Flood           FloodThresholds     `json:"flood" toml:"flood" yaml:"flood"`
	Snow            SnowThresholds      `json:"snow" toml:"snow" yaml:"snow"`
	WintryMixPivotC float64             `json:"wintry_mix_pivot_c" toml:"wintry_mix_pivot_c" yaml:"wintry_mix_pivot_c"`
	IceHumidityPct  float64             `json:"ice_humidity_pct" toml:"ice_humidity_pct" yaml:"ice_humidity_pct" validate:"min=0,max=100"`
	Heat            HeatThresholds      `json:"heat" toml:"heat" yaml:"heat"`
	Fog             FogThresholds       `json:"fog" toml:"fog" yaml:"fog"`
	WindChill       WindChillThresholds `json:"wind_chill" toml:"wind_chill" yaml:"wind_chill"`
	Wildfire        WildfireThresholds  `json:"wildfire" toml:"wildfire" yaml:"wildfire"`
}

// WindThresholds are sustained wind and gust cutoffs in m/s.
type WindThresholds struct {
	AdvisoryMs     float64 `json:"advisory_ms" toml:"advisory_ms" yaml:"advisory_ms" validate:"gt=0"`
	WarningMs      float64 `json:"warning_ms" toml:"warning_ms" yaml:"warning_ms" validate:"gtefield=AdvisoryMs"`
	GustAdvisoryMs float64 `json:"gust_advisory_ms" toml:"gust_advisory_ms" yaml:"gust_advisory_ms" validate:"gt=0"`
	GustWarningMs  float64 `json:"gust_warning_ms" toml:"gust_warning_ms" yaml:"gust_warning_ms" validate:"gtefield=GustAdvisoryMs"`
}

// FloodThresholds are rain cutoffs in mm, per 3h step and per 24h.
type FloodThresholds struct {
	Rain3hWatchMm float64 `json:"rain_3h_watch_mm" toml:"rain_3h_watch_mm" yaml:"rain_3h_watch_mm" validate:"gt=0"`
	Rain3hWarnMm  float64 `json:"rain_3h_warn_mm" toml:"rain_3h_warn_mm" yaml:"rain_3h_warn_mm" validate:"gtefield=Rain3hWatchMm"`
	Rain24WatchMm float64 `json:"rain_24h_watch_mm" toml:"rain_24h_watch_mm" yaml:"rain_24h_watch_mm" validate:"gt=0"`
	Rain24WarnMm  float64 `json:"rain_24h_warn_mm" toml:"rain_24h_warn_mm" yaml:"rain_24h_warn_mm" validate:"gtefield=Rain24WatchMm"`
}

// SnowThresholds are liquid-equivalent snow cutoffs in mm.
type SnowThresholds struct {
	Snow3hWatchMm float64 `json:"snow_3h_watch_mm" toml:"snow_3h_watch_mm" yaml:"snow_3h_watch_mm" validate:"gt=0"`
	Snow3hWarnMm  float64 `json:"snow_3h_warn_mm" toml:"snow_3h_warn_mm" yaml:"snow_3h_warn_mm" validate:"gtefield=Snow3hWatchMm"`
	Snow24WatchMm float64 `json:"snow_24h_watch_mm" toml:"snow_24h_watch_mm" yaml:"snow_24h_watch_mm" validate:"gt=0"`
	Snow24WarnMm  float64 `json:"snow_24h_warn_mm" toml:"snow_24h_warn_mm" yaml:"snow_24h_warn_mm" validate:"gtefield=Snow24WatchMm"`
}

// HeatThresholds pair a temperature (°C) with a minimum relative humidity (%).
type HeatThresholds struct {
	AdvisoryT  float64 `json:"advisory_t" toml:"advisory_t" yaml:"advisory_t"`
	AdvisoryRH float64 `json:"advisory_rh" toml:"advisory_rh" yaml:"advisory_rh" validate:"min=0,max=100"`
	WarningT   float64 `json:"warning_t" toml:"warning_t" yaml:"warning_t" validate:"gtefield=AdvisoryT"`
	WarningRH  float64 `json:"warning_rh" toml:"warning_rh" yaml:"warning_rh" validate:"gtefield=AdvisoryRH,max=100"`
}

// FogThresholds: lower visibility is more severe.
type FogThresholds struct {
	VisAdvisoryM   float64 `json:"vis_advisory_m" toml:"vis_advisory_m" yaml:"vis_advisory_m" validate:"gtefield=VisWarningM"`
	VisWarningM    float64 `json:"vis_warning_m" toml:"vis_warning_m" yaml:"vis_warning_m" validate:"gt=0"`
	HumidityMinPct float64 `json:"humidity_min_pct" toml:"humidity_min_pct" yaml:"humidity_min_pct" validate:"min=0,max=100"`
	WindMaxMs      float64 `json:"wind_max_ms" toml:"wind_max_ms" yaml:"wind_max_ms" validate:"min=0"`
}

// WindChillThresholds are feels-like cutoffs in °C; colder is more severe.
type WindChillThresholds struct {
	AdvisoryC float64 `json:"advisory_c" toml:"advisory_c" yaml:"advisory_c"`
	WarningC  float64 `json:"warning_c" toml:"warning_c" yaml:"warning_c" validate:"ltefield=AdvisoryC"`
}

// WildfireThresholds must all hold at once for the risk alert.
type WildfireThresholds struct {
	RHMaxPct  float64 `json:"rh_max_pct" toml:"rh_max_pct" yaml:"rh_max_pct" validate:"min=0,max=100"`
	TMinC     float64 `json:"t_min_c" toml:"t_min_c" yaml:"t_min_c"`
	WindMinMs float64 `json:"wind_min_ms" toml:"wind_min_ms" yaml:"wind_min_ms" validate:"min=0"`
}

// FeatureFlags toggles optional rules.
type FeatureFlags struct {
	WildfireAlerts bool `json:"wildfire_alerts"`
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		Wind: WindThresholds{
			AdvisoryMs:     11,
			WarningMs:      17,
			GustAdvisoryMs: 15,
			GustWarningMs:  24,
		},
		LowPressureHpa: 1000,
		CloudsHeavyPct: 80,
		Flood: FloodThresholds{
			Rain3hWatchMm: 15,
			Rain3hWarnMm:  30,
			Rain24WatchMm: 25,
			Rain24WarnMm:  40,
		},
		Snow: SnowThresholds{
			Snow3hWatchMm: 5,
			Snow3hWarnMm:  10,
			Snow24WatchMm: 10,
			Snow24WarnMm:  20,
		},
		WintryMixPivotC: 1,
		IceHumidityPct:  85,
		Heat: HeatThresholds{
			AdvisoryT:  30,
			AdvisoryRH: 40,
			WarningT:   35,
			WarningRH:  50,
		},
		Fog: FogThresholds{
			VisAdvisoryM:   1000,
			VisWarningM:    200,
			HumidityMinPct: 90,
			WindMaxMs:      5,
		},
		WindChill: WindChillThresholds{
			AdvisoryC: -20,
			WarningC:  -30,
		},
		Wildfire: WildfireThresholds{
			RHMaxPct:  25,
			TMinC:     27,
			WindMinMs: 7,
		},
	}
}

// DefaultFeatureFlags enables every optional rule.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{WildfireAlerts: true}
}

var validate = validator.New()

// Validate checks ranges and that each warning cutoff is at least as severe as
// its advisory (or watch) counterpart.
func (c ThresholdConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	return nil
}
