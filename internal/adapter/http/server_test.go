package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/storm-data-alerts/internal/adapter/http"
	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, domain.DefaultEngine(), slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

type alertsBody struct {
	Alerts []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Severity string `json:"severity"`
		Icon     string `json:"icon"`
		URL      string `json:"url"`
	} `json:"alerts"`
	CalmMessage string `json:"calm_message"`
}

func postAlerts(t *testing.T, body string) (*httptest.ResponseRecorder, alertsBody) {
	t.Helper()
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/alerts", strings.NewReader(body))

	srv.ServeHTTP(rec, req)

	var decoded alertsBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestPostAlerts_Hazard(t *testing.T) {
	rec, body := postAlerts(t, `{
		"observation": {
			"weather": [{"id": 800, "main": "Clear"}],
			"main": {"temp": 29, "feels_like": 30, "humidity": 55},
			"wind": {"speed": 2},
			"dt": 1714140000,
			"name": "Phoenix"
		},
		"forecast": [{"dt": 1714150800, "main": {"temp": 31, "humidity": 65}}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Len(t, body.Alerts, 2)
	assert.Equal(t, "heat-advisory", body.Alerts[0].ID)
	assert.Equal(t, "thermometer-high", body.Alerts[0].Icon)
	assert.NotEmpty(t, body.Alerts[0].URL)
	assert.Equal(t, "seismic-info", body.Alerts[1].ID)
	assert.Equal(t, "information-outline", body.Alerts[1].Icon)
	assert.Empty(t, body.CalmMessage)
}

func TestPostAlerts_Calm(t *testing.T) {
	rec, body := postAlerts(t, `{
		"observation": {
			"weather": [{"id": 800, "main": "Clear"}],
			"main": {"temp": 20, "humidity": 50},
			"dt": 1714140000
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Alerts, 1)
	assert.Contains(t, body.CalmMessage, "Clear skies")
}

func TestPostAlerts_EmptyBundle(t *testing.T) {
	rec, body := postAlerts(t, `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body.Alerts)
	assert.Empty(t, body.Alerts)
	assert.Equal(t, "No weather alerts for your area right now.", body.CalmMessage)
}

func TestPostAlerts_InvalidJSON(t *testing.T) {
	rec, _ := postAlerts(t, `{"observation": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid weather bundle")
}

func TestPostAlerts_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/alerts", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
