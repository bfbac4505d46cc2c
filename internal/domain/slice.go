package domain

import "time"

// SliceStats summarizes the values inside one day-part window. The aggregate
// fields are nil when the window holds no present values; Count then reports
// the window length, so "hours covered but unreported" stays distinguishable
// from "no window coverage at all" (Count zero).
type SliceStats struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Sum   *float64 `json:"sum"`
}

// WindowBounds resolves a day-part to absolute times on targetDate in loc.
// The target date is anchored at local midnight; only its date part is used.
// Night's end lands on the day after the target date.
func WindowBounds(targetDate time.Time, part DayPart, loc *time.Location) (start, end time.Time) {
	w := dayPartWindows[part.normalize()]

	year, month, day := targetDate.Date()
	start = time.Date(year, month, day, w.startHour, 0, 0, 0, loc)

	endDay := day
	if w.endNextDay {
		endDay++
	}
	end = time.Date(year, month, endDay, w.endHour, 0, 0, 0, loc)
	return start, end
}

// SliceWindow extracts the sub-series whose timestamps fall inside the
// day-part window on targetDate. The window is half-open [start, end) so a
// boundary hour is never attributed to two adjacent windows. When values is
// shorter than times, selected indexes past its end are treated as absent,
// tolerating provider payloads with partial fields. Input order is preserved.
func SliceWindow(times []time.Time, values []*float64, targetDate time.Time, part DayPart, loc *time.Location) ([]time.Time, []*float64) {
	if len(times) == 0 || len(values) == 0 {
		return nil, nil
	}

	start, end := WindowBounds(targetDate, part, loc)

	var slicedTimes []time.Time
	var slicedValues []*float64
	for i, ts := range times {
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		slicedTimes = append(slicedTimes, ts)
		if i < len(values) {
			slicedValues = append(slicedValues, values[i])
		} else {
			slicedValues = append(slicedValues, nil)
		}
	}
	return slicedTimes, slicedValues
}

// WindowStats slices a series to the day-part window and aggregates the
// present values. An empty slice yields the zero SliceStats; a non-empty
// slice with no present values yields Count set to the slice length and nil
// aggregates.
func WindowStats(times []time.Time, values []*float64, targetDate time.Time, part DayPart, loc *time.Location) SliceStats {
	_, sliced := SliceWindow(times, values, targetDate, part, loc)
	if len(sliced) == 0 {
		return SliceStats{}
	}

	present := presentValues(sliced)
	if len(present) == 0 {
		return SliceStats{Count: len(sliced)}
	}

	sum := 0.0
	min, max := present[0], present[0]
	for _, v := range present {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(present))

	return SliceStats{
		Count: len(present),
		Mean:  &mean,
		Min:   &min,
		Max:   &max,
		Sum:   &sum,
	}
}
