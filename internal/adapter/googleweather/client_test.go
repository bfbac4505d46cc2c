package googleweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradeguard/risk-engine/internal/observability"
)

const testKey = "test-key"

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     testKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewMetricsForTesting(),
	}
}

const currentPayload = `{
	"currentTime": "2026-09-12T13:00:00Z",
	"isDaytime": true,
	"weatherCondition": {"type": "LIGHT_RAIN"},
	"temperature": {"degrees": 27.4, "unit": "CELSIUS"},
	"feelsLikeTemperature": {"degrees": 31.0, "unit": "CELSIUS"},
	"relativeHumidity": 84,
	"uvIndex": 6,
	"precipitation": {
		"probability": {"percent": 65},
		"qpf": {"value": 1.2, "unit": "MILLIMETERS"}
	},
	"wind": {
		"speed": {"value": 14.5, "unit": "KILOMETERS_PER_HOUR"},
		"gust": {"value": 28.0, "unit": "KILOMETERS_PER_HOUR"},
		"direction": {"degrees": 240}
	},
	"visibility": {"value": 9.5, "unit": "KILOMETERS"},
	"cloudCover": 75
}`

func TestClient_Current_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/currentConditions:lookup", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, testKey, q.Get("key"))
		assert.Equal(t, "9.9312", q.Get("location.latitude"))
		assert.Equal(t, "76.2673", q.Get("location.longitude"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentPayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	current, err := c.Current(context.Background(), 9.9312, 76.2673)
	require.NoError(t, err)
	require.NotNil(t, current)

	assert.Equal(t, "google-weather", current.Provider)
	assert.Equal(t, time.Date(2026, 9, 12, 13, 0, 0, 0, time.UTC), current.Time)
	assert.Equal(t, 27.4, *current.Temperature)
	assert.Equal(t, 31.0, *current.ApparentTemperature)
	assert.Equal(t, 1.2, *current.Precipitation)
	assert.Equal(t, 65.0, *current.PrecipitationProbability)
	assert.Equal(t, 14.5, *current.WindSpeed)
	assert.Equal(t, 28.0, *current.WindGusts)
	assert.Equal(t, 240.0, *current.WindDirection)
	assert.Equal(t, 84.0, *current.RelativeHumidity)
	assert.Equal(t, 75.0, *current.CloudCover)
	assert.Equal(t, 9.5, *current.Visibility)
	assert.Equal(t, 6.0, *current.UVIndex)
	require.NotNil(t, current.IsDay)
	assert.True(t, *current.IsDay)
	assert.Equal(t, "LIGHT_RAIN", current.Condition)
}

func TestClient_Current_SparsePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature": {"degrees": 22.0}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	current, err := c.Current(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 22.0, *current.Temperature)
	assert.Nil(t, current.WindSpeed)
	assert.Nil(t, current.Precipitation)
	assert.Nil(t, current.IsDay)
	assert.True(t, current.Time.IsZero())
}

func TestClient_Current_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"status": "PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
