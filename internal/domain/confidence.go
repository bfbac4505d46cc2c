package domain

import "math"

// Confidence labels reported on an assessment.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// completenessSignal checks the key forecast series. A reported series counts
// complete when it carries at least one present value; series the provider
// omitted entirely stay out of the denominator.
func completenessSignal(hourly *Hourly) (float64, bool) {
	if hourly == nil {
		return 0, false
	}

	series := [][]*float64{
		hourly.Temperature,
		hourly.Precipitation,
		hourly.PrecipitationProbability,
		hourly.WindSpeed,
	}

	var total, complete int
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		total++
		if len(presentValues(s)) > 0 {
			complete++
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(complete) / float64(total), true
}

// agreementSignal compares the two providers' current temperatures. Close
// readings raise confidence, divergent ones lower it. Absent on anything
// less than two temperature-bearing snapshots.
func agreementSignal(primary, secondary *Current) (float64, bool) {
	if primary == nil || secondary == nil ||
		primary.Temperature == nil || secondary.Temperature == nil {
		return 0, false
	}

	delta := math.Abs(*primary.Temperature - *secondary.Temperature)
	switch {
	case delta < 2:
		return 0.8, true
	case delta < 5:
		return 0.6, true
	default:
		return 0.3, true
	}
}

// EstimateConfidence averages the available confidence signals into a label
// and a 0..1 value. A fixed 0.7 baseline always participates, so a fully
// blind estimate still lands at Medium rather than collapsing to zero.
func EstimateConfidence(hourly *Hourly, primary, secondary *Current) (label string, value float64) {
	signals := []float64{0.7}

	if s, ok := completenessSignal(hourly); ok {
		signals = append(signals, s)
	}
	if s, ok := agreementSignal(primary, secondary); ok {
		signals = append(signals, s)
	}

	sum := 0.0
	for _, s := range signals {
		sum += s
	}
	value = sum / float64(len(signals))
	return ConfidenceLabel(value), value
}

// ConfidenceLabel maps a 0..1 confidence value to its display label.
func ConfidenceLabel(value float64) string {
	switch {
	case value >= 0.8:
		return ConfidenceHigh
	case value >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
