package domain

import "time"

// Hourly holds the provider-agnostic hourly forecast series for one location.
// Value slices are positionally aligned with Times; nil entries are absent
// readings. A series a provider does not report is simply left nil.
type Hourly struct {
	Times                    []time.Time `json:"time"`
	Temperature              []*float64  `json:"temperature_2m,omitempty"`
	ApparentTemperature      []*float64  `json:"apparent_temperature,omitempty"`
	Precipitation            []*float64  `json:"precipitation,omitempty"`
	PrecipitationProbability []*float64  `json:"precipitation_probability,omitempty"`
	WindSpeed                []*float64  `json:"wind_speed_10m,omitempty"`
	WindGusts                []*float64  `json:"wind_gusts_10m,omitempty"`
	RelativeHumidity         []*float64  `json:"relative_humidity_2m,omitempty"`
	CloudCover               []*float64  `json:"cloud_cover,omitempty"`
	Visibility               []*float64  `json:"visibility,omitempty"` // km
	UVIndex                  []*float64  `json:"uv_index,omitempty"`
	IsDay                    []*bool     `json:"is_day,omitempty"`
}

// Current is one provider's current-conditions snapshot. Only the fields the
// provider reports are set.
type Current struct {
	Provider                 string    `json:"provider,omitempty"`
	Time                     time.Time `json:"time"`
	Temperature              *float64  `json:"temperature,omitempty"`
	ApparentTemperature      *float64  `json:"apparent_temperature,omitempty"`
	Precipitation            *float64  `json:"precipitation,omitempty"`
	PrecipitationProbability *float64  `json:"precipitation_probability,omitempty"`
	WindSpeed                *float64  `json:"wind_speed,omitempty"`
	WindGusts                *float64  `json:"wind_gusts,omitempty"`
	WindDirection            *float64  `json:"wind_direction,omitempty"`
	RelativeHumidity         *float64  `json:"relative_humidity,omitempty"`
	CloudCover               *float64  `json:"cloud_cover,omitempty"`
	Visibility               *float64  `json:"visibility,omitempty"` // km
	UVIndex                  *float64  `json:"uv_index,omitempty"`
	IsDay                    *bool     `json:"is_day,omitempty"`
	Condition                string    `json:"condition,omitempty"`
}

// Forecast is a forecast provider's bundle for one location: the hourly
// horizon, the provider's own current snapshot, and the location's IANA
// timezone as reported by the provider.
type Forecast struct {
	Hourly   Hourly
	Current  *Current
	Timezone string
}

// RiskAssessment is the scored outcome of one (location, date, window)
// query. It is created once per query and never mutated.
type RiskAssessment struct {
	ID               string    `json:"id"`
	CompositeScore   float64   `json:"composite_score"`
	RainScore        float64   `json:"rain_score"`
	TemperatureScore float64   `json:"temperature_score"`
	WindScore        float64   `json:"wind_score"`
	VisibilityScore  float64   `json:"visibility_score"`
	Confidence       string    `json:"confidence"`
	ConfidenceValue  float64   `json:"confidence_value"`
	Band             string    `json:"band"`
	Color            string    `json:"color"`
	Verdict          string    `json:"verdict"`
	DayPart          string    `json:"day_part"`
	GeneratedAt      time.Time `json:"generated_at"`
}
