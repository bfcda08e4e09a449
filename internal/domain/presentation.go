package domain

// Icon ids follow the Material Community Icons set used by the mobile client.
const fallbackIcon = "alert"

var categoryIcons = map[Category]string{
	CategoryWind:        "weather-windy",
	CategoryFlood:       "home-flood",
	CategorySnow:        "weather-snowy-heavy",
	CategoryCold:        "snowflake-thermometer",
	CategoryHeat:        "thermometer-high",
	CategoryFire:        "fire-alert",
	CategoryStorm:       "weather-lightning-rainy",
	CategoryRain:        "weather-pouring",
	CategoryWeather:     "weather-cloudy-alert",
	CategoryInformation: "information-outline",
}

// IconFor maps an alert category to an icon id. Unknown categories map to the
// generic alert icon.
func IconFor(category Category) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return fallbackIcon
}

const (
	calmFallback = "No weather alerts for your area right now."
	mistOrFog    = "A little mist or fog about. Take it easy on the roads."
)

var calmMessages = map[string]string{
	"Clear":   "Clear skies and calm conditions. Enjoy the day.",
	"Clouds":  "Cloudy but calm. No hazards expected.",
	"Rain":    "Light rain around, nothing severe. An umbrella should do.",
	"Drizzle": "A bit of drizzle, nothing to worry about.",
	"Snow":    "Light snow falling, no winter hazards expected.",
	"Mist":    mistOrFog,
	"Fog":     mistOrFog,
}

// CalmMessage returns reassurance copy for the observation's primary
// condition, or a generic no-alerts sentence.
func CalmMessage(obs *Observation) string {
	if msg, ok := calmMessages[obs.PrimaryCondition()]; ok {
		return msg
	}
	return calmFallback
}
