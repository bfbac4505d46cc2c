package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// RainScore computes the rain hazard sub-score from the full precipitation
// and precipitation-probability series. Both series must carry at least one
// present value; otherwise the score is 0 (no data means no penalty).
func (t Thresholds) RainScore(precipitation, probability []*float64) float64 {
	peakRate, okRate := maxPresent(precipitation)
	peakProb, okProb := maxPresent(probability)
	if !okRate || !okProb {
		return 0
	}

	var intensity float64
	switch {
	case peakRate >= t.HeavyRainRate:
		intensity = 100
	case peakRate >= t.ModerateRainRate:
		intensity = 70
	case peakRate >= t.DrizzleRate:
		intensity = 40
	}

	var prob float64
	switch {
	case peakProb >= t.HighProbability:
		prob = 100
	case peakProb >= t.ElevatedProbability:
		prob = 60
	default:
		prob = peakProb * 0.6
	}

	// Intensity dominates the blend; probability hedges it.
	return clampScore(intensity*0.6 + prob*0.4)
}

// TemperatureScore computes the comfort sub-score from the apparent
// temperature series: 5 points per degree C below the cool threshold plus 5
// points per degree C above the hot threshold, each side capped at 50. A
// series that never leaves the comfort band scores 0.
func (t Thresholds) TemperatureScore(apparent []*float64) float64 {
	minTemp, ok := minPresent(apparent)
	if !ok {
		return 0
	}
	maxTemp, _ := maxPresent(apparent)

	var score float64
	if minTemp < t.CoolBelow {
		score += math.Min((t.CoolBelow-minTemp)*5, 50)
	}
	if maxTemp > t.HotAbove {
		score += math.Min((maxTemp-t.HotAbove)*5, 50)
	}
	return clampScore(score)
}

// WindScore computes the wind hazard sub-score from sustained speeds and
// gusts. Gusts carry more weight than sustained speed.
func (t Thresholds) WindScore(speeds, gusts []*float64) float64 {
	var score float64

	if peakSpeed, ok := maxPresent(speeds); ok && peakSpeed > t.SustainedWindOver {
		score += math.Min((peakSpeed-t.SustainedWindOver)*2, 40)
	}

	if peakGust, ok := maxPresent(gusts); ok {
		switch {
		case peakGust >= t.GustHigh:
			score += 60
		case peakGust >= t.GustCaution:
			score += 40
		default:
			score += math.Min(peakGust*0.8, 30)
		}
	}

	return clampScore(score)
}

// VisibilityScore computes the sky-condition sub-score from cloud cover,
// visibility, and the daytime UV index. All three contributions are
// independent and additive; any of the inputs may be empty.
func (t Thresholds) VisibilityScore(cloudCover, visibility, uvIndex []*float64, isDay []*bool) float64 {
	var score float64

	if avgCloud, ok := meanPresent(cloudCover); ok {
		switch {
		case avgCloud > t.CloudHeavy:
			score += 50
		case avgCloud > t.CloudModerate:
			score += 30
		}
	}

	if minVisibility, ok := minPresent(visibility); ok {
		switch {
		case minVisibility < t.VisibilityPoor:
			score += 40
		case minVisibility < t.VisibilityReduced:
			score += 20
		}
	}

	if peakUV, ok := maxDaytime(uvIndex, isDay); ok && peakUV >= t.UVHigh {
		score += 30
	}

	return clampScore(score)
}

// maxDaytime returns the largest present value whose positionally aligned
// is-day flag is present and true.
func maxDaytime(values []*float64, isDay []*bool) (max float64, ok bool) {
	for i, v := range values {
		if v == nil || i >= len(isDay) || isDay[i] == nil || !*isDay[i] {
			continue
		}
		if !ok || *v > max {
			max = *v
		}
		ok = true
	}
	return max, ok
}

// Assess scores a full hourly horizon and packages the result with
// confidence, band, and verdict. Scorers deliberately consume the entire
// horizon rather than the day-part slice; the windowed statistics reported
// alongside an assessment come from [WindowStats] instead. hourly, primary,
// and secondary may all be nil; missing data degrades scores toward zero and
// confidence toward Low, never into an error.
func (t Thresholds) Assess(hourly *Hourly, primary, secondary *Current, part DayPart) RiskAssessment {
	var rain, temperature, wind, visibility float64
	if hourly != nil {
		rain = t.RainScore(hourly.Precipitation, hourly.PrecipitationProbability)
		temperature = t.TemperatureScore(hourly.ApparentTemperature)
		wind = t.WindScore(hourly.WindSpeed, hourly.WindGusts)
		visibility = t.VisibilityScore(hourly.CloudCover, hourly.Visibility, hourly.UVIndex, hourly.IsDay)
	}

	composite := round1(rain*t.RainWeight +
		temperature*t.TemperatureWeight +
		wind*t.WindWeight +
		visibility*t.VisibilityWeight)

	label, value := EstimateConfidence(hourly, primary, secondary)
	band, color := RiskBand(composite)

	return RiskAssessment{
		CompositeScore:   composite,
		RainScore:        round1(rain),
		TemperatureScore: round1(temperature),
		WindScore:        round1(wind),
		VisibilityScore:  round1(visibility),
		Confidence:       label,
		ConfidenceValue:  round2(value),
		Band:             band,
		Color:            color,
		Verdict:          Verdict(composite, part),
		DayPart:          part.String(),
		GeneratedAt:      clock.Now(),
	}
}

// RiskBand maps a composite score to its display band and color.
func RiskBand(score float64) (band, color string) {
	switch {
	case score >= 80:
		return "Very High", "red"
	case score >= 60:
		return "High", "orange"
	case score >= 40:
		return "Moderate", "yellow"
	case score >= 20:
		return "Low", "lightgreen"
	default:
		return "Very Low", "green"
	}
}

// Verdict phrases a composite score for a day-part in plain language.
func Verdict(score float64, part DayPart) string {
	switch {
	case score >= 70:
		return fmt.Sprintf("High risk of weather disruption during %s", part)
	case score >= 50:
		return fmt.Sprintf("Moderate weather risk during %s", part)
	case score >= 30:
		return fmt.Sprintf("Some weather concerns during %s", part)
	default:
		return fmt.Sprintf("Good weather conditions expected during %s", part)
	}
}

// AssessmentID produces a deterministic ID from a query's key fields.
// Repeated queries for the same (location, date, window) publish downstream
// under the same key, which keeps consumers replay-safe.
func AssessmentID(lat, lon float64, date time.Time, part DayPart) string {
	input := fmt.Sprintf("%.4f|%.4f|%s|%s", lat, lon, date.Format("2006-01-02"), part)
	hash := sha256.Sum256([]byte(input))
	return "risk-" + hex.EncodeToString(hash[:8])
}

func clampScore(score float64) float64 {
	return math.Min(score, 100)
}
