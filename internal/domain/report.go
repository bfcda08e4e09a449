package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// reportNamespace scopes UUIDv5 report ids.
var reportNamespace = uuid.MustParse("6f1c2a52-4a0e-5b8e-9c57-3d7b8f1e2a90")

// AlertReport is the sink-topic record for one weather bundle.
type AlertReport struct {
	ID          string    `json:"id"`
	Location    string    `json:"location"`
	Coord       *Coord    `json:"coord,omitempty"`
	ObservedAt  time.Time `json:"observed_at"`
	Alerts      []Alert   `json:"alerts"`
	MaxSeverity Severity  `json:"max_severity,omitempty"`
	CalmMessage string    `json:"calm_message,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// HasHazards reports whether any alert above Info fired.
func (r AlertReport) HasHazards() bool {
	return r.MaxSeverity.Rank() > SeverityInfo.Rank()
}

// BuildReport wraps derived alerts for publication. The calm message is set
// when nothing above Info fired.
func BuildReport(bundle WeatherBundle, alerts []Alert) AlertReport {
	obs := bundle.Observation
	report := AlertReport{
		Alerts:      alerts,
		ProcessedAt: clock.Now().UTC(),
	}
	if report.Alerts == nil {
		report.Alerts = []Alert{}
	}

	if obs != nil {
		report.Location = obs.Name
		report.Coord = obs.Coord
		report.ObservedAt = time.Unix(obs.Dt, 0).UTC()
	}
	report.ID = generateReportID(obs)

	for _, a := range report.Alerts {
		if a.Severity.Rank() > report.MaxSeverity.Rank() {
			report.MaxSeverity = a.Severity
		}
	}
	if !report.HasHazards() {
		report.CalmMessage = CalmMessage(obs)
	}
	return report
}

// generateReportID derives a UUIDv5 from place, observation time, and
// coordinates so replaying a bundle yields the same id.
func generateReportID(obs *Observation) string {
	if obs == nil {
		return uuid.NewSHA1(reportNamespace, nil).String()
	}
	var lat, lon float64
	if obs.Coord != nil {
		lat, lon = obs.Coord.Lat, obs.Coord.Lon
	}
	key := fmt.Sprintf("%s|%d|%.4f|%.4f", obs.Name, obs.Dt, lat, lon)
	return uuid.NewSHA1(reportNamespace, []byte(key)).String()
}

// SerializeReport marshals a report into a sink message keyed by report id.
func SerializeReport(report AlertReport) (OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize alert report: %w", err)
	}
	return OutputEvent{
		Key:   []byte(report.ID),
		Value: data,
		Headers: map[string]string{
			"location":     report.Location,
			"max_severity": string(report.MaxSeverity),
			"alert_count":  strconv.Itoa(len(report.Alerts)),
			"processed_at": report.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
