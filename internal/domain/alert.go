package domain

import "time"

// Category groups alerts by the physical hazard.
type Category string

const (
	CategoryWind        Category = "Wind"
	CategoryFlood       Category = "Flood"
	CategorySnow        Category = "Snow"
	CategoryCold        Category = "Cold"
	CategoryHeat        Category = "Heat"
	CategoryFire        Category = "Fire"
	CategoryStorm       Category = "Storm"
	CategoryRain        Category = "Rain"
	CategoryWeather     Category = "Weather"
	CategoryInformation Category = "Information"
)

// Severity is the urgency tier of an alert.
type Severity string

const (
	SeverityInfo     Severity = "Info"
	SeverityAdvisory Severity = "Advisory"
	SeverityWatch    Severity = "Watch"
	SeverityWarning  Severity = "Warning"
)

// Rank orders severities ascending; unknown values rank below Info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityAdvisory:
		return 2
	case SeverityWatch:
		return 3
	case SeverityWarning:
		return 4
	default:
		return 0
	}
}

// Alert ids.
const (
	AlertHighWind             = "high-wind"
	AlertWindAdvisory         = "wind-advisory"
	AlertFloodWatch           = "flood-watch"
	AlertLowPressure          = "low-pressure"
	AlertDenseFogWarning      = "dense-fog-warning"
	AlertFogAdvisory          = "fog-advisory"
	AlertThunderstormWatch    = "thunderstorm-watch"
	AlertFloodWarningRain     = "flood-warning-rain"
	AlertFloodWatchRain       = "flood-watch-rain"
	AlertWinterStormWarning   = "winter-storm-warning"
	AlertWinterStormWatch     = "winter-storm-watch"
	AlertFreezingRainAdvisory = "freezing-rain-advisory"
	AlertWintryMixAdvisory    = "wintry-mix-advisory"
	AlertRainAdvisory         = "rain-advisory"
	AlertSnowAdvisory         = "snow-advisory"
	AlertIcySurfaceAdvisory   = "icy-surface-advisory"
	AlertWindChillWarning     = "wind-chill-warning"
	AlertWindChillAdvisory    = "wind-chill-advisory"
	AlertHeatWarning          = "heat-warning"
	AlertHeatAdvisory         = "heat-advisory"
	AlertWildfireRisk         = "wildfire-risk"
	AlertSeismicInfo          = "seismic-info"
)

// Alert is a single derived hazard alert.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
	URL         string    `json:"url"`
	Precaution  string    `json:"precaution"`
}

// alertTemplate holds the static parts of an alert, keyed by id.
type alertTemplate struct {
	title      string
	category   Category
	severity   Severity
	url        string
	precaution string
}

var templates = map[string]alertTemplate{
	AlertHighWind: {
		title: "High Wind Warning", category: CategoryWind, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/wind",
		precaution: "Secure loose outdoor objects and avoid travel in high-profile vehicles.",
	},
	AlertWindAdvisory: {
		title: "Wind Advisory", category: CategoryWind, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/wind",
		precaution: "Use extra caution when driving and watch for falling branches.",
	},
	AlertFloodWatch: {
		title: "Flood Watch", category: CategoryFlood, severity: SeverityWatch,
		url:        "https://www.weather.gov/safety/flood",
		precaution: "Monitor local forecasts and be ready to move to higher ground.",
	},
	AlertLowPressure: {
		title: "Low-Pressure System Advisory", category: CategoryWeather, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/jetstream/highlow",
		precaution: "Expect unsettled weather and plan outdoor activities with flexibility.",
	},
	AlertDenseFogWarning: {
		title: "Dense Fog Warning", category: CategoryWeather, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/fog",
		precaution: "Avoid driving if possible; otherwise slow down and use low-beam headlights.",
	},
	AlertFogAdvisory: {
		title: "Fog Advisory", category: CategoryWeather, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/fog",
		precaution: "Slow down, use low-beam headlights, and leave extra following distance.",
	},
	AlertThunderstormWatch: {
		title: "Thunderstorm Watch", category: CategoryStorm, severity: SeverityWatch,
		url:        "https://www.weather.gov/safety/thunderstorm",
		precaution: "When thunder roars, go indoors and stay away from open areas.",
	},
	AlertFloodWarningRain: {
		title: "Flood Warning (Heavy Rain)", category: CategoryFlood, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/flood",
		precaution: "Never drive through flooded roads. Turn around, don't drown.",
	},
	AlertFloodWatchRain: {
		title: "Flood Watch (Heavy Rain)", category: CategoryFlood, severity: SeverityWatch,
		url:        "https://www.weather.gov/safety/flood",
		precaution: "Keep drains clear and avoid low-lying areas during heavy rain.",
	},
	AlertWinterStormWarning: {
		title: "Winter Storm Warning", category: CategorySnow, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/winter",
		precaution: "Avoid travel and keep an emergency kit in your home and vehicle.",
	},
	AlertWinterStormWatch: {
		title: "Winter Storm Watch", category: CategorySnow, severity: SeverityWatch,
		url:        "https://www.weather.gov/safety/winter",
		precaution: "Prepare for heavy snow and check supplies before conditions worsen.",
	},
	AlertFreezingRainAdvisory: {
		title: "Freezing Rain Advisory", category: CategoryCold, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/winter-ice-frost",
		precaution: "Expect glazed surfaces; walk carefully and allow extra travel time.",
	},
	AlertWintryMixAdvisory: {
		title: "Wintry Mix Advisory", category: CategoryCold, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/winter",
		precaution: "Mixed rain and snow may make roads slick; drive slowly.",
	},
	AlertRainAdvisory: {
		title: "Rain Advisory", category: CategoryRain, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/flood-turn-around-dont-drown",
		precaution: "Carry rain gear and watch for ponding on roads.",
	},
	AlertSnowAdvisory: {
		title: "Snow Advisory", category: CategorySnow, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/winter",
		precaution: "Allow extra time for travel and clear walkways early.",
	},
	AlertIcySurfaceAdvisory: {
		title: "Icy Surface Advisory", category: CategoryCold, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/winter-ice-frost",
		precaution: "Watch for black ice on bridges, overpasses, and shaded roads.",
	},
	AlertWindChillWarning: {
		title: "Wind Chill Warning", category: CategoryCold, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/cold-wind-chill-chart",
		precaution: "Limit time outdoors; frostbite can occur on exposed skin within minutes.",
	},
	AlertWindChillAdvisory: {
		title: "Wind Chill Advisory", category: CategoryCold, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/cold-wind-chill-chart",
		precaution: "Dress in layers and cover exposed skin when outside.",
	},
	AlertHeatWarning: {
		title: "Excessive Heat Warning", category: CategoryHeat, severity: SeverityWarning,
		url:        "https://www.weather.gov/safety/heat",
		precaution: "Stay in air conditioning, drink water often, and check on vulnerable neighbors.",
	},
	AlertHeatAdvisory: {
		title: "Heat Advisory", category: CategoryHeat, severity: SeverityAdvisory,
		url:        "https://www.weather.gov/safety/heat",
		precaution: "Stay hydrated and take breaks in the shade during the afternoon.",
	},
	AlertWildfireRisk: {
		title: "Elevated Wildfire Risk", category: CategoryFire, severity: SeverityWatch,
		url:        "https://www.weather.gov/safety/wildfire",
		precaution: "Avoid outdoor burning and anything that could spark a fire.",
	},
	AlertSeismicInfo: {
		title: "Seismic & Volcanic Hazards", category: CategoryInformation, severity: SeverityInfo,
		url:        "https://earthquake.usgs.gov/earthquakes/map/",
		precaution: "Follow official geological survey channels for earthquake and volcano alerts.",
	},
}

// newAlert fills an Alert from its template. Timestamps are stamped by the
// assembler.
func newAlert(id, description string) Alert {
	t := templates[id]
	return Alert{
		ID:          id,
		Title:       t.title,
		Description: description,
		Category:    t.category,
		Severity:    t.severity,
		URL:         t.url,
		Precaution:  t.precaution,
	}
}
