// Package domain implements the ParadeGuard disruption-risk model: day-part
// window slicing over hourly weather series and the multi-factor scoring
// algorithm that condenses them into a single explainable 0-100 risk score.
//
// # Day-part windows
//
// Queries target one of four fixed local-time windows:
//
//	Morning    06:00-12:00
//	Afternoon  12:00-18:00
//	Evening    18:00-21:00
//	Night      21:00-06:00 (ends the following day)
//
// Windows are half-open [start, end) so a boundary hour belongs to exactly
// one window: Night owns 21:00, the next Morning owns 06:00. Night is the
// only window that crosses midnight; its end is anchored to the day after
// the target date. An unrecognized window name resolves to Evening, the
// product's default window, rather than failing.
//
// # Optional values
//
// Hourly series carry values as *float64 where nil means "no reading", which
// is never the same as zero. Aggregation skips absent values; a window that
// is covered by timestamps but holds no readings is reported with a count
// but nil aggregates, distinguishing "no data" from "no window coverage".
//
// # Scoring model
//
// Four independent hazard scorers each produce a 0-100 sub-score from fixed
// thresholds (see [DefaultThresholds]):
//
//	Rain:        peak intensity tier (>=4.0 mm/h -> 100, >=1.0 -> 70,
//	             >=0.2 -> 40) blended 60/40 with a peak-probability tier
//	             (>=70% -> 100, >=50% -> 60, else 0.6 points per percent).
//	Temperature: apparent-temperature discomfort, 5 points per degree C
//	             below 18 or above 32, each side capped at 50.
//	Wind:        sustained speed above 30 km/h (2 points per km/h, max 40)
//	             plus a gust tier (>=55 km/h -> 60, >=35 -> 40, else 0.8
//	             points per km/h up to 30).
//	Visibility:  average cloud cover (>80% -> 50, >60% -> 30), minimum
//	             visibility (<5 km -> 40, <10 km -> 20), and peak daytime
//	             UV index (>=7 -> 30).
//
// The composite is a weighted sum: 0.40 rain + 0.25 temperature + 0.20 wind
// + 0.15 visibility, mapped to a display band (Very Low through Very High)
// and a plain-language verdict.
//
// Scorers consume the full hourly horizon, not the day-part slice. The
// windowed statistics shown next to an assessment are therefore narrower
// than the data that produced the score; see [Thresholds.Assess].
//
// # Confidence
//
// A secondary 0-1 estimate of how trustworthy the composite is, averaged
// from data completeness across the four key series, temperature agreement
// between two independent current-conditions providers when both report,
// and a fixed 0.7 temporal-proximity baseline. Labels: >=0.8 High,
// >=0.6 Medium, else Low.
//
// # Missing data
//
// The model never fails on missing weather data. Empty or all-absent series
// score 0 ("no data means no penalty") while confidence degrades toward Low.
// A provider that systematically drops a hazardous variable can therefore
// understate risk; confidence is the only signal of that condition.
package domain
