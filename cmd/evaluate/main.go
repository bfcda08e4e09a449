// Command evaluate runs the alert engine offline. With -bundle it prints the
// alert report for a single weather bundle. With -fixtures it checks that every
// fixture bundle derives exactly its expected alert ids, in order.
//
// Usage:
//
//	go run ./cmd/evaluate -bundle observation.json
//	go run ./cmd/evaluate -fixtures internal/pipeline/testdata/bundles.json \
//	  -thresholds thresholds.toml -wildfire=false
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/couchcryptid/storm-data-alerts/internal/config"
	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

// fixture is one bundle with the alert ids it must produce.
type fixture struct {
	Name   string               `json:"name"`
	Expect []string             `json:"expect"`
	Bundle domain.WeatherBundle `json:"bundle"`
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	bundlePath := flag.String("bundle", "", "path to a single weather bundle JSON file")
	fixturesPath := flag.String("fixtures", "", "path to a JSON array of {name, expect, bundle} fixtures")
	thresholdsPath := flag.String("thresholds", "", "TOML or YAML threshold overrides")
	wildfire := flag.Bool("wildfire", true, "enable wildfire risk alerts")
	flag.Parse()

	if (*bundlePath == "") == (*fixturesPath == "") {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "exactly one of -bundle or -fixtures is required")
		os.Exit(1)
	}

	thresholds, err := config.LoadThresholds(*thresholdsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	engine := domain.NewEngine(thresholds, domain.FeatureFlags{WildfireAlerts: *wildfire})

	if *bundlePath != "" {
		if err := printReport(engine, *bundlePath); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(checkFixtures(engine, *fixturesPath))
}

func printReport(engine domain.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}
	bundle, err := domain.ParseRawEvent(domain.RawEvent{Value: data})
	if err != nil {
		return err
	}

	report := domain.BuildReport(bundle, engine.Derive(bundle.Observation, bundle.Forecast))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func checkFixtures(engine domain.Engine, path string) int {
	fixtures, err := loadFixtures(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixtures: %v\n", err)
		return 1
	}

	fmt.Println("=== Alert Engine Evaluation ===")
	fmt.Println()

	phases := []*phase{
		validateExpectedAlerts(engine, fixtures),
		validateAlertShape(engine, fixtures),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Fixtures: %d\n", len(fixtures))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-20)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

func loadFixtures(path string) ([]fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []fixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func validateExpectedAlerts(engine domain.Engine, fixtures []fixture) *phase {
	p := &phase{name: "Expected alert ids"}
	for _, f := range fixtures {
		alerts := engine.Derive(f.Bundle.Observation, f.Bundle.Forecast)
		got := make([]string, 0, len(alerts))
		for _, a := range alerts {
			got = append(got, a.ID)
		}
		want := f.Expect
		if want == nil {
			want = []string{}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			p.errorf("%s: alert ids mismatch (-want +got):\n%s", f.Name, diff)
		}
	}
	return p
}

// validateAlertShape checks structural guarantees that hold for every bundle.
func validateAlertShape(engine domain.Engine, fixtures []fixture) *phase {
	p := &phase{name: "Alert structure"}
	for _, f := range fixtures {
		alerts := engine.Derive(f.Bundle.Observation, f.Bundle.Forecast)
		if len(alerts) == 0 {
			continue
		}
		if last := alerts[len(alerts)-1]; last.ID != domain.AlertSeismicInfo {
			p.errorf("%s: last alert is %s, want %s", f.Name, last.ID, domain.AlertSeismicInfo)
		}
		seen := map[string]bool{}
		for i, a := range alerts {
			if seen[a.ID] {
				p.errorf("%s: duplicate alert %s", f.Name, a.ID)
			}
			seen[a.ID] = true
			if i > 0 && !a.Timestamp.After(alerts[i-1].Timestamp) {
				p.errorf("%s: alert %s timestamp not after %s", f.Name, a.ID, alerts[i-1].ID)
			}
			if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Description) == "" {
				p.errorf("%s: alert %s has empty title or description", f.Name, a.ID)
			}
			if a.Severity.Rank() == 0 {
				p.errorf("%s: alert %s has unknown severity %q", f.Name, a.ID, a.Severity)
			}
		}
	}
	return p
}
