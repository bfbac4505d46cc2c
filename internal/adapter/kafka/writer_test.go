package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	generated := time.Date(2026, 9, 12, 10, 30, 0, 0, time.UTC)
	result := assess.Result{
		Place:  domain.Place{Query: "Kochi", Lat: 9.9312, Lon: 76.2673},
		Date:   "2026-09-12",
		Window: "Evening",
		Assessment: domain.RiskAssessment{
			ID:             "risk-deadbeef01234567",
			CompositeScore: 61.5,
			Band:           "High",
			Color:          "orange",
			GeneratedAt:    generated,
		},
		Providers: []string{"open-meteo"},
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("risk-deadbeef01234567"), msg.Key)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "High", headers["risk_band"])
	assert.Equal(t, "Evening", headers["day_part"])
	assert.Equal(t, "2026-09-12T10:30:00Z", headers["generated_at"])

	var decoded assess.Result
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, result.Assessment.ID, decoded.Assessment.ID)
	assert.Equal(t, 61.5, decoded.Assessment.CompositeScore)
	assert.Equal(t, "Kochi", decoded.Place.Query)
}
