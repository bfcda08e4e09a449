package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

// AlertTransformer implements Transformer by running the alert engine over
// each bundle, with optional place name enrichment.
type AlertTransformer struct {
	engine   domain.Engine
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates an AlertTransformer. Pass a nil geocoder to disable
// place name enrichment.
func NewTransformer(engine domain.Engine, geocoder domain.Geocoder, logger *slog.Logger) *AlertTransformer {
	return &AlertTransformer{
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *AlertTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.AlertReport, error) {
	bundle, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.AlertReport{}, err
	}

	bundle = domain.EnrichPlaceName(ctx, bundle, t.geocoder, t.logger)
	alerts := t.engine.Derive(bundle.Observation, bundle.Forecast)

	return domain.BuildReport(bundle, alerts), nil
}
