package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mthomas46/jirassic-pack-sub000/internal/report"
	"github.com/mthomas46/jirassic-pack-sub000/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `{"asctime":"2024-01-01 10:05:00","levelname":"ERROR","feature":"create_issue","user":"alice","correlation_id":"abc","message":"boom"}
{"asctime":"2024-01-01 10:50:00","levelname":"ERROR","feature":"create_issue","user":"alice","correlation_id":"abc","message":"boom again"}
{"asctime":"2024-01-01 11:05:00","levelname":"INFO","feature":"gather_metrics","user":"bob","correlation_id":"abc","message":"ok"}
not json
`

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	src, err := source.New(path)
	require.NoError(t, err)
	return New(src, "0")
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, testServer(t), "/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["entries"]) // the garbage line is dropped
}

func TestSummaryEndpoint(t *testing.T) {
	w := get(t, testServer(t), "/api/summary")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Total  int `json:"total"`
		Levels []struct {
			Label string `json:"label"`
			Value int    `json:"value"`
		} `json:"levels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Levels, 2)
	assert.Equal(t, "ERROR", body.Levels[0].Label)
	assert.Equal(t, 2, body.Levels[0].Value)
}

func TestRegistryListing(t *testing.T) {
	w := get(t, testServer(t), "/api/analytics")

	require.Equal(t, http.StatusOK, w.Code)
	var listing []struct {
		Key    string `json:"key"`
		Title  string `json:"title"`
		Params []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Len(t, listing, 8)
	assert.Equal(t, "error-rate", listing[0].Key)
	require.NotEmpty(t, listing[0].Params)
	assert.Equal(t, "interval", listing[0].Params[0].Name)
}

func TestAnalyticEndpoint(t *testing.T) {
	w := get(t, testServer(t), "/api/analytics/error-rate?interval=hour")

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "Error rate over time", rep.Type)
	assert.Equal(t, []string{"Time", "Error Count"}, rep.Headers)
	require.Len(t, rep.Data, 1)
	assert.Equal(t, "2024-01-01 10:00", rep.Data[0][0])
	assert.EqualValues(t, 2, rep.Data[0][1])
	assert.Nil(t, rep.Summary)
}

func TestAnalyticWithFilter(t *testing.T) {
	w := get(t, testServer(t), "/api/analytics/user-activity?level=INFO&top_n=3")

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Len(t, rep.Data, 1)
	assert.Equal(t, "bob", rep.Data[0][0])
}

func TestAnalyticTimeFilter(t *testing.T) {
	url := "/api/analytics/error-rate?start=" + strings.ReplaceAll("2024-01-01 10:30:00", " ", "%20")
	w := get(t, testServer(t), url)

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Len(t, rep.Data, 1)
	assert.EqualValues(t, 1, rep.Data[0][1])
}

func TestAnalyticUnknown(t *testing.T) {
	w := get(t, testServer(t), "/api/analytics/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyticBadParams(t *testing.T) {
	s := testServer(t)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/analytics/top-features?top_n=lots").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/analytics/error-rate?interval=week").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/analytics/error-spikes?threshold=high").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/analytics/error-rate?start=tomorrow").Code)
}
