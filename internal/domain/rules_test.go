package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deriveIDs runs the default engine and returns the fired ids without the
// trailing seismic disclaimer.
func deriveIDs(obs *Observation, forecast Forecast) []string {
	ids := alertIDs(DeriveAlerts(obs, forecast))
	if n := len(ids); n > 0 && ids[n-1] == AlertSeismicInfo {
		ids = ids[:n-1]
	}
	return ids
}

func TestWindRule(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		gust  *float64
		want  []string
	}{
		{"calm", 3, nil, []string{}},
		{"sustained advisory", 11, nil, []string{AlertWindAdvisory}},
		{"sustained warning", 17, nil, []string{AlertHighWind}},
		{"gust advisory", 5, Float(15), []string{AlertWindAdvisory}},
		{"gust warning", 5, Float(24), []string{AlertHighWind}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.Wind = Wind{Speed: Float(tt.speed), Gust: tt.gust}
			assert.Equal(t, tt.want, deriveIDs(obs, nil))
		})
	}
}

func TestLowPressureRule(t *testing.T) {
	wet := repeatStep(ForecastStep{Rain: &Precip{ThreeHour: Float(1.5)}}, 8) // 12 mm

	tests := []struct {
		name     string
		pressure float64
		clouds   float64
		humidity float64
		forecast Forecast
		want     string
	}{
		{"flood watch when saturated", 990, 90, 90, wet, AlertFloodWatch},
		{"low pressure when drier", 990, 90, 70, wet, AlertLowPressure},
		{"pressure not low", 1005, 90, 90, wet, ""},
		{"too few clouds", 990, 50, 90, wet, ""},
		{"too little precipitation", 990, 90, 90, repeatStep(ForecastStep{Rain: &Precip{ThreeHour: Float(1)}}, 2), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.Main.Pressure = Float(tt.pressure)
			obs.Main.Humidity = Float(tt.humidity)
			obs.Clouds = Clouds{All: Float(tt.clouds)}

			ids := deriveIDs(obs, tt.forecast)
			if tt.want == "" {
				assert.NotContains(t, ids, AlertFloodWatch)
				assert.NotContains(t, ids, AlertLowPressure)
				return
			}
			require.NotEmpty(t, ids)
			assert.Equal(t, tt.want, ids[0])
		})
	}
}

func TestFogRule(t *testing.T) {
	tests := []struct {
		name       string
		visibility *float64
		humidity   float64
		wind       float64
		want       []string
	}{
		{"dense fog", Float(150), 97, 1, []string{AlertDenseFogWarning}},
		{"fog advisory", Float(600), 92, 3, []string{AlertFogAdvisory}},
		{"visibility too high", Float(5000), 97, 1, []string{}},
		{"too dry", Float(150), 70, 1, []string{}},
		{"too windy", Float(150), 97, 8, []string{}},
		{"no visibility", nil, 97, 1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.Visibility = tt.visibility
			obs.Main.Humidity = Float(tt.humidity)
			obs.Wind = Wind{Speed: Float(tt.wind)}
			assert.Equal(t, tt.want, deriveIDs(obs, nil))
		})
	}
}

func TestThunderstormRule(t *testing.T) {
	obs := calmObservation()
	forecast := Forecast{{Weather: []Condition{{ID: 800}}}, {Weather: []Condition{{ID: 200, Main: "Thunderstorm"}}}}

	assert.Equal(t, []string{AlertThunderstormWatch}, deriveIDs(obs, forecast))

	forecast[1].Weather[0].ID = 232
	assert.Empty(t, deriveIDs(obs, forecast))
}

func TestHeavyRainRule(t *testing.T) {
	tests := []struct {
		name string
		mm   []float64
		want string
	}{
		{"24h warning", []float64{10, 10, 10, 10}, AlertFloodWarningRain},
		{"3h warning", []float64{30}, AlertFloodWarningRain},
		{"24h watch", []float64{9, 9, 9}, AlertFloodWatchRain},
		{"3h watch", []float64{15}, AlertFloodWatchRain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			var forecast Forecast
			for _, mm := range tt.mm {
				forecast = append(forecast, ForecastStep{Rain: &Precip{ThreeHour: Float(mm)}})
			}
			assert.Equal(t, []string{tt.want}, deriveIDs(obs, forecast))
		})
	}
}

func TestHeavySnowRule(t *testing.T) {
	tests := []struct {
		name string
		mm   []float64
		want string
	}{
		{"24h warning", []float64{5, 5, 5, 5}, AlertWinterStormWarning},
		{"3h warning", []float64{10}, AlertWinterStormWarning},
		{"24h watch", []float64{4, 4, 3}, AlertWinterStormWatch},
		{"3h watch", []float64{5}, AlertWinterStormWatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			var forecast Forecast
			for _, mm := range tt.mm {
				forecast = append(forecast, ForecastStep{Snow: &Precip{ThreeHour: Float(mm)}})
			}
			assert.Equal(t, []string{tt.want}, deriveIDs(obs, forecast))
		})
	}

	t.Run("below watch", func(t *testing.T) {
		forecast := Forecast{{Snow: &Precip{ThreeHour: Float(4)}}}
		ids := deriveIDs(calmObservation(), forecast)
		assert.NotContains(t, ids, AlertWinterStormWatch)
		assert.NotContains(t, ids, AlertWinterStormWarning)
	})
}

func TestLightPrecipRule(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		rain     float64
		snow     float64
		stepTemp float64
		want     []string
	}{
		{"rain", 15, 3, 0, 14, []string{AlertRainAdvisory}},
		{"snow only", -3, 0, 2, -1, []string{AlertSnowAdvisory}},
		{"freezing rain", 0.5, 2, 0, 2, []string{AlertFreezingRainAdvisory}},
		{"freezing rain at pivot", 1, 2, 0, 2, []string{AlertFreezingRainAdvisory}},
		{"freezing rain from forecast minimum", 5, 2, 0, 0.5, []string{AlertFreezingRainAdvisory}},
		{"wintry mix", 0.5, 2, 2, 2, []string{AlertWintryMixAdvisory}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.Main.Temp = Float(tt.temp)
			step := ForecastStep{Main: &Readings{Temp: Float(tt.stepTemp), Humidity: Float(60)}}
			if tt.rain > 0 {
				step.Rain = &Precip{ThreeHour: Float(tt.rain)}
			}
			if tt.snow > 0 {
				step.Snow = &Precip{ThreeHour: Float(tt.snow)}
			}
			assert.Equal(t, tt.want, deriveIDs(obs, Forecast{step}))
		})
	}
}

func TestIceRule(t *testing.T) {
	obs := calmObservation()
	obs.Main.Temp = Float(-2)
	obs.Main.Humidity = Float(90)
	forecast := Forecast{{Main: &Readings{Temp: Float(-3), Humidity: Float(80)}, Snow: &Precip{ThreeHour: Float(1)}}}

	alerts := DeriveAlerts(obs, forecast)
	ice, ok := findAlert(alerts, AlertIcySurfaceAdvisory)
	require.True(t, ok)
	assert.Equal(t, CategoryCold, ice.Category)
	assert.Contains(t, ice.Description, "-3°C")

	obs.Main.Humidity = Float(60)
	assert.NotContains(t, deriveIDs(obs, forecast), AlertIcySurfaceAdvisory)
}

func TestWindChillRule(t *testing.T) {
	tests := []struct {
		feels float64
		want  []string
	}{
		{-10, []string{}},
		{-20, []string{AlertWindChillAdvisory}},
		{-29, []string{AlertWindChillAdvisory}},
		{-30, []string{AlertWindChillWarning}},
		{-40, []string{AlertWindChillWarning}},
	}

	for _, tt := range tests {
		obs := calmObservation()
		obs.Main.FeelsLike = Float(tt.feels)
		assert.Equal(t, tt.want, deriveIDs(obs, nil), "feels like %v", tt.feels)
	}
}

func TestHeatRule(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		humidity float64
		forecast Forecast
		want     []string
	}{
		{"warning from forecast", 25, 50, Forecast{{Main: &Readings{Temp: Float(36), Humidity: Float(55)}}}, []string{AlertHeatWarning}},
		{"advisory from current", 33, 45, nil, []string{AlertHeatAdvisory}},
		{"hot but dry", 38, 30, nil, []string{}},
		{"forecast overrides current", 36, 60, Forecast{{Main: &Readings{Temp: Float(20), Humidity: Float(60)}}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := calmObservation()
			obs.Main.Temp = Float(tt.temp)
			obs.Main.Humidity = Float(tt.humidity)
			assert.Equal(t, tt.want, deriveIDs(obs, tt.forecast))
		})
	}
}

func TestWildfireRule_MissingWind(t *testing.T) {
	obs := calmObservation()
	obs.Main.Temp = Float(30)
	obs.Main.Humidity = Float(20)
	obs.Wind = Wind{}

	assert.NotContains(t, deriveIDs(obs, nil), AlertWildfireRisk)
}

func TestAlertTemplates(t *testing.T) {
	ids := []string{
		AlertHighWind, AlertWindAdvisory, AlertFloodWatch, AlertLowPressure,
		AlertDenseFogWarning, AlertFogAdvisory, AlertThunderstormWatch,
		AlertFloodWarningRain, AlertFloodWatchRain, AlertWinterStormWarning,
		AlertWinterStormWatch, AlertFreezingRainAdvisory, AlertWintryMixAdvisory,
		AlertRainAdvisory, AlertSnowAdvisory, AlertIcySurfaceAdvisory,
		AlertWindChillWarning, AlertWindChillAdvisory, AlertHeatWarning,
		AlertHeatAdvisory, AlertWildfireRisk, AlertSeismicInfo,
	}

	for _, id := range ids {
		a := newAlert(id, "desc")
		assert.Equal(t, id, a.ID)
		assert.NotEmpty(t, a.Title, id)
		assert.NotEmpty(t, a.Category, id)
		assert.NotZero(t, a.Severity.Rank(), id)
		assert.NotEmpty(t, a.URL, id)
		assert.NotEmpty(t, a.Precaution, id)
	}
}
