// Command genmock generates synthetic weather bundles and the alert reports
// the engine derives from them. It uses the actual domain package so the
// report fixture matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -n 200 -seed 42 \
//	  -bundles-out data/mock/weather_bundles.json \
//	  -reports-out data/mock/alert_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

var baseDate = time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC)

// climate describes the ranges a city's synthetic readings are drawn from.
type climate struct {
	name       string
	lat, lon   float64
	tempC      [2]float64
	humidity   [2]float64
	windMs     [2]float64
	rain3hMm   float64 // upper bound per forecast step
	snow3hMm   float64 // upper bound per forecast step
	stormOdds  float64 // chance a forecast step carries a thunderstorm code
	visibility [2]float64
}

var climates = []climate{
	{name: "Austin", lat: 30.27, lon: -97.74, tempC: [2]float64{15, 33}, humidity: [2]float64{30, 80}, windMs: [2]float64{0, 12}, rain3hMm: 12, stormOdds: 0.1, visibility: [2]float64{4000, 10000}},
	{name: "Phoenix", lat: 33.45, lon: -112.07, tempC: [2]float64{24, 42}, humidity: [2]float64{8, 45}, windMs: [2]float64{0, 10}, rain3hMm: 2, stormOdds: 0.02, visibility: [2]float64{8000, 10000}},
	{name: "Mumbai", lat: 19.08, lon: 72.88, tempC: [2]float64{26, 34}, humidity: [2]float64{60, 95}, windMs: [2]float64{1, 14}, rain3hMm: 25, stormOdds: 0.2, visibility: [2]float64{1500, 8000}},
	{name: "San Francisco", lat: 37.77, lon: -122.42, tempC: [2]float64{9, 20}, humidity: [2]float64{70, 100}, windMs: [2]float64{0, 9}, rain3hMm: 6, stormOdds: 0.01, visibility: [2]float64{100, 10000}},
	{name: "Denver", lat: 39.74, lon: -104.99, tempC: [2]float64{-15, 18}, humidity: [2]float64{30, 95}, windMs: [2]float64{2, 22}, rain3hMm: 4, snow3hMm: 9, stormOdds: 0.05, visibility: [2]float64{800, 10000}},
	{name: "Oslo", lat: 59.91, lon: 10.75, tempC: [2]float64{-25, 10}, humidity: [2]float64{60, 95}, windMs: [2]float64{0, 15}, rain3hMm: 3, snow3hMm: 6, stormOdds: 0.01, visibility: [2]float64{2000, 10000}},
}

// fixture is one generated bundle with its derived alert ids.
type fixture struct {
	Name   string               `json:"name"`
	Key    string               `json:"key"`
	Expect []string             `json:"expect"`
	Bundle domain.WeatherBundle `json:"bundle"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	n := flag.Int("n", 100, "number of bundles to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	bundlesOut := flag.String("bundles-out", "", "output path for the weather bundle fixture")
	reportsOut := flag.String("reports-out", "", "output path for the alert report fixture")
	flag.Parse()

	if *bundlesOut == "" || *reportsOut == "" || *n <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -bundles-out, -reports-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(baseDate.Add(6 * time.Hour)))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	engine := domain.DefaultEngine()

	fixtures := make([]fixture, 0, *n)
	reports := make([]domain.AlertReport, 0, *n)
	for i := range *n {
		c := climates[i%len(climates)]
		bundle := generateBundle(rng, c, baseDate.Add(time.Duration(i)*time.Hour))
		alerts := engine.Derive(bundle.Observation, bundle.Forecast)

		ids := make([]string, 0, len(alerts))
		for _, a := range alerts {
			ids = append(ids, a.ID)
		}
		fixtures = append(fixtures, fixture{
			Name:   fmt.Sprintf("%s #%d", c.name, i),
			Key:    fmt.Sprintf("bundle-%d", i),
			Expect: ids,
			Bundle: bundle,
		})
		reports = append(reports, domain.BuildReport(bundle, alerts))
	}

	log.Printf("generated %d bundles", len(fixtures))

	if err := writeJSON(*bundlesOut, fixtures); err != nil {
		return fmt.Errorf("writing bundle fixture: %w", err)
	}
	log.Printf("wrote bundle fixture: %s", *bundlesOut)

	if err := writeJSON(*reportsOut, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportsOut)

	printStats(reports)
	return nil
}

func generateBundle(rng *rand.Rand, c climate, at time.Time) domain.WeatherBundle {
	temp := between(rng, c.tempC)
	humidity := between(rng, c.humidity)
	wind := between(rng, c.windMs)

	obs := &domain.Observation{
		Coord:   &domain.Coord{Lat: c.lat, Lon: c.lon},
		Weather: []domain.Condition{condition(rng, temp, c)},
		Main: &domain.Readings{
			Temp:      domain.Float(round1(temp)),
			FeelsLike: domain.Float(round1(feelsLike(temp, wind))),
			Humidity:  domain.Float(math.Round(humidity)),
			Pressure:  domain.Float(math.Round(between(rng, [2]float64{985, 1030}))),
		},
		Visibility: domain.Float(math.Round(between(rng, c.visibility))),
		Wind: domain.Wind{
			Speed: domain.Float(round1(wind)),
			Gust:  domain.Float(round1(wind * (1.2 + rng.Float64()*0.6))),
		},
		Clouds: domain.Clouds{All: domain.Float(math.Round(rng.Float64() * 100))},
		Dt:     at.Unix(),
		Name:   c.name,
	}

	steps := 8 + rng.IntN(9) // 8 to 16 steps, the engine only reads the first 8
	forecast := make(domain.Forecast, 0, steps)
	for s := range steps {
		stepTemp := temp + rng.NormFloat64()*3
		step := domain.ForecastStep{
			Dt: at.Add(time.Duration(s+1) * 3 * time.Hour).Unix(),
			Main: &domain.Readings{
				Temp:     domain.Float(round1(stepTemp)),
				Humidity: domain.Float(math.Round(clamp(humidity+rng.NormFloat64()*8, 0, 100))),
			},
			Weather: []domain.Condition{condition(rng, stepTemp, c)},
			Wind:    domain.Wind{Gust: domain.Float(round1(wind * (1.1 + rng.Float64())))},
			Clouds:  domain.Clouds{All: domain.Float(math.Round(rng.Float64() * 100))},
		}
		if rng.Float64() < c.stormOdds {
			step.Weather = []domain.Condition{{ID: 211, Main: "Thunderstorm"}}
		}
		if c.rain3hMm > 0 && stepTemp > 0 && rng.Float64() < 0.4 {
			step.Rain = &domain.Precip{ThreeHour: domain.Float(round1(rng.Float64() * c.rain3hMm))}
		}
		if c.snow3hMm > 0 && stepTemp <= 1 && rng.Float64() < 0.5 {
			step.Snow = &domain.Precip{ThreeHour: domain.Float(round1(rng.Float64() * c.snow3hMm))}
		}
		forecast = append(forecast, step)
	}

	return domain.WeatherBundle{Observation: obs, Forecast: forecast}
}

func condition(rng *rand.Rand, temp float64, c climate) domain.Condition {
	switch r := rng.Float64(); {
	case temp <= 0 && c.snow3hMm > 0 && r < 0.4:
		return domain.Condition{ID: 601, Main: "Snow"}
	case c.rain3hMm > 10 && r < 0.3:
		return domain.Condition{ID: 501, Main: "Rain"}
	case c.visibility[0] < 1000 && r < 0.3:
		return domain.Condition{ID: 741, Main: "Fog"}
	case r < 0.6:
		return domain.Condition{ID: 800, Main: "Clear"}
	default:
		return domain.Condition{ID: 803, Main: "Clouds"}
	}
}

// feelsLike applies the North American wind chill index below 10°C and
// returns the air temperature otherwise.
func feelsLike(tempC, windMs float64) float64 {
	kmh := windMs * 3.6
	if tempC > 10 || kmh < 4.8 {
		return tempC
	}
	v := math.Pow(kmh, 0.16)
	return 13.12 + 0.6215*tempC - 11.37*v + 0.3965*tempC*v
}

func between(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.AlertReport) {
	alertCounts := map[string]int{}
	severityCounts := map[string]int{}
	calm := 0
	for _, r := range reports {
		for _, a := range r.Alerts {
			alertCounts[a.ID]++
		}
		severityCounts[string(r.MaxSeverity)]++
		if r.CalmMessage != "" {
			calm++
		}
	}

	fmt.Println("\nAlerts:")
	printSorted(alertCounts)
	fmt.Println("\nMax severity:")
	printSorted(severityCounts)
	fmt.Printf("\nCalm reports: %d of %d\n", calm, len(reports))
}

func printSorted(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		label := k
		if label == "" {
			label = "(none)"
		}
		fmt.Printf("  %-26s %d\n", label, counts[k])
	}
}
