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

	httpadapter "github.com/couchcryptid/forecast-summary/internal/adapter/http"
	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	rules := synthesis.DefaultRules()
	gen := report.New(synthesis.New(rules), report.Options{Workers: 2}, slog.Default(), observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, gen, rules, slog.Default())
}

func serve(srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := serve(newTestServer(fmt.Errorf("not ready yet")), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRulesEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/v1/rules", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var rules synthesis.Rules
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	assert.Equal(t, synthesis.DefaultRules(), rules)
}

const summaryRequest = `{
	"points": [{"id": "kc", "lat": 39.1, "lon": -94.6, "zone": {"utc_offset_hours": -6, "observes_dst": true}}],
	"frequency": "12h",
	"periods": 2,
	"generated_at": "2024-01-15T15:00:00Z",
	"samples": [
		{"element": "wx", "point_id": "kc", "valid_time": "2024-01-15T15:00:00Z", "value": "Lkly:R:m:<NoVis>:"},
		{"element": "wx", "point_id": "kc", "valid_time": "2024-01-15T18:00:00Z", "value": "Lkly:R:m:<NoVis>:"},
		{"element": "pop12", "point_id": "kc", "valid_time": "2024-01-16T00:00:00Z", "value": 70}
	]
}`

func TestSummariesEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodPost, "/v1/summaries", summaryRequest)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.Len(t, rep.Points, 1)
	require.Len(t, rep.Points[0].Periods, 2)
	assert.Equal(t, "Rain Likely", rep.Points[0].Periods[0].Phrase)
	assert.Equal(t, domain.TwelveHour, rep.Frequency)
	assert.NotEmpty(t, rep.ID)
}

func TestSummariesEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"points":`, want: http.StatusBadRequest},
		{name: "unknown element", body: `{"points":[{"id":"a"}],"samples":[{"element":"nope","point_id":"a","valid_time":"2024-01-15T15:00:00Z","value":1}]}`, want: http.StatusBadRequest},
		{name: "period count over cap", body: `{"points":[{"id":"a"}],"periods":5000000}`, want: http.StatusBadRequest},
		{name: "missing weather", body: `{"points":[{"id":"a"}],"samples":[{"element":"sky","point_id":"a","valid_time":"2024-01-15T15:00:00Z","value":10}]}`, want: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestServer(nil), http.MethodPost, "/v1/summaries", tt.body)
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSummariesEndpoint_RejectsGet(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/v1/summaries", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
