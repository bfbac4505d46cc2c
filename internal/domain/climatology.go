package domain

import "math"

// ClimatologyMonth is one month of historical normals for a location.
type ClimatologyMonth struct {
	Date           string   `json:"date"`
	AvgTemperature *float64 `json:"avg_temperature,omitempty"`
	MinTemperature *float64 `json:"min_temperature,omitempty"`
	MaxTemperature *float64 `json:"max_temperature,omitempty"`
	Precipitation  *float64 `json:"precipitation,omitempty"`
	Sunshine       *float64 `json:"sunshine,omitempty"`
	Pressure       *float64 `json:"pressure,omitempty"`
	Month          int      `json:"month"`
	Year           int      `json:"year"`
}

// Climatology places the current month against historical normals for the
// same calendar month: where does this year's month sit within the
// distribution of past years, as a percentile. Nil percentiles mean the
// record was too thin to rank (fewer than three historical samples).
type Climatology struct {
	Months                []ClimatologyMonth `json:"-"`
	SampleYears           int                `json:"sample_years"`
	RainPercentile        *float64           `json:"rain_percentile,omitempty"`
	TemperaturePercentile *float64           `json:"temperature_percentile,omitempty"`
}

// NewClimatology places the clock's current month within the record's
// matching calendar months.
func NewClimatology(months []ClimatologyMonth) Climatology {
	now := clock.Now()
	curMonth, curYear := int(now.Month()), now.Year()

	var samples []ClimatologyMonth
	var current *ClimatologyMonth
	for i, m := range months {
		if m.Month != curMonth {
			continue
		}
		samples = append(samples, m)
		if m.Year == curYear {
			current = &months[i]
		}
	}

	c := Climatology{Months: months, SampleYears: len(samples)}
	if current == nil {
		return c
	}

	c.RainPercentile = monthPercentile(current.Precipitation, samples, func(m ClimatologyMonth) *float64 {
		return m.Precipitation
	})
	c.TemperaturePercentile = monthPercentile(current.AvgTemperature, samples, func(m ClimatologyMonth) *float64 {
		return m.AvgTemperature
	})
	return c
}

// monthPercentile estimates where value sits within the month's samples by
// interpolating linearly on each side of the sample median: values at or
// above the median map onto 50..100, values below onto 0..50. Needs at least
// three samples and some spread on the relevant side; a flat record yields
// nil rather than a misleading rank.
func monthPercentile(value *float64, months []ClimatologyMonth, pick func(ClimatologyMonth) *float64) *float64 {
	if value == nil {
		return nil
	}

	var samples []float64
	for _, m := range months {
		if v := pick(m); v != nil {
			samples = append(samples, *v)
		}
	}
	if len(samples) < 3 {
		return nil
	}

	median := medianOf(samples)
	min, _ := minOf(samples)
	max, _ := maxOf(samples)

	var pct float64
	if *value >= median {
		if max == median {
			return nil
		}
		pct = 50 + math.Min((*value-median)/(max-median)*50, 50)
	} else {
		if median == min {
			return nil
		}
		pct = math.Max((*value-min)/(median-min)*50, 0)
	}

	pct = round1(pct)
	return &pct
}

func minOf(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	min := samples[0]
	for _, s := range samples[1:] {
		if s < min {
			min = s
		}
	}
	return min, true
}

func maxOf(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	max := samples[0]
	for _, s := range samples[1:] {
		if s > max {
			max = s
		}
	}
	return max, true
}
