package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

// hourlySeries builds 48 hourly timestamps starting at local midnight of the
// given date, with values equal to the hour index.
func hourlySeries(t *testing.T, date time.Time, loc *time.Location) ([]time.Time, []*float64) {
	t.Helper()
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)

	times := make([]time.Time, 48)
	values := make([]*float64, 48)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
		values[i] = fptr(float64(i))
	}
	return times, values
}

func TestSliceWindow(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, time.September, 12, 0, 0, 0, 0, loc)

	t.Run("morning picks hours 6 through 11", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		slicedTimes, slicedValues := SliceWindow(times, values, date, Morning, loc)

		require.Len(t, slicedTimes, 6)
		require.Len(t, slicedValues, 6)
		assert.Equal(t, 6, slicedTimes[0].Hour())
		assert.Equal(t, 11, slicedTimes[5].Hour())
		assert.Equal(t, 6.0, *slicedValues[0])
		assert.Equal(t, 11.0, *slicedValues[5])
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		slicedTimes, _ := SliceWindow(times, values, date, Evening, loc)

		require.Len(t, slicedTimes, 3)
		for _, ts := range slicedTimes {
			assert.Less(t, ts.Hour(), 21)
			assert.GreaterOrEqual(t, ts.Hour(), 18)
		}
	})

	t.Run("night spans midnight into the next day", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		slicedTimes, slicedValues := SliceWindow(times, values, date, Night, loc)

		require.Len(t, slicedTimes, 9)
		assert.Equal(t, 21, slicedTimes[0].Hour())
		assert.Equal(t, 12, slicedTimes[0].Day())
		assert.Equal(t, 5, slicedTimes[8].Hour())
		assert.Equal(t, 13, slicedTimes[8].Day())
		assert.Equal(t, 21.0, *slicedValues[0])
		assert.Equal(t, 29.0, *slicedValues[8])
	})

	t.Run("short values series nil-fills the tail", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		slicedTimes, slicedValues := SliceWindow(times, values[:8], date, Morning, loc)

		require.Len(t, slicedTimes, 6)
		require.Len(t, slicedValues, 6)
		assert.Equal(t, 6.0, *slicedValues[0])
		assert.Equal(t, 7.0, *slicedValues[1])
		for _, v := range slicedValues[2:] {
			assert.Nil(t, v)
		}
	})

	t.Run("empty inputs yield nil", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)

		slicedTimes, slicedValues := SliceWindow(nil, values, date, Morning, loc)
		assert.Nil(t, slicedTimes)
		assert.Nil(t, slicedValues)

		slicedTimes, slicedValues = SliceWindow(times, nil, date, Morning, loc)
		assert.Nil(t, slicedTimes)
		assert.Nil(t, slicedValues)
	})

	t.Run("slicing a slice again is a no-op", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		onceTimes, onceValues := SliceWindow(times, values, date, Afternoon, loc)
		twiceTimes, twiceValues := SliceWindow(onceTimes, onceValues, date, Afternoon, loc)

		assert.Equal(t, onceTimes, twiceTimes)
		assert.Equal(t, onceValues, twiceValues)
	})

	t.Run("no overlap between adjacent windows", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		seen := map[time.Time]int{}
		for _, part := range []DayPart{Morning, Afternoon, Evening, Night} {
			slicedTimes, _ := SliceWindow(times, values, date, part, loc)
			for _, ts := range slicedTimes {
				seen[ts]++
			}
		}
		for ts, n := range seen {
			assert.Equal(t, 1, n, "hour %v claimed by %d windows", ts, n)
		}
	})
}

func TestWindowStats(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, time.September, 12, 0, 0, 0, 0, loc)

	t.Run("aggregates present values", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		stats := WindowStats(times, values, date, Evening, loc)

		// Evening covers hours 18, 19, 20.
		assert.Equal(t, 3, stats.Count)
		require.NotNil(t, stats.Mean)
		assert.Equal(t, 19.0, *stats.Mean)
		assert.Equal(t, 18.0, *stats.Min)
		assert.Equal(t, 20.0, *stats.Max)
		assert.Equal(t, 57.0, *stats.Sum)
	})

	t.Run("absent values are skipped but counted out", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		values[18] = nil
		stats := WindowStats(times, values, date, Evening, loc)

		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, 19.5, *stats.Mean)
		assert.Equal(t, 19.0, *stats.Min)
		assert.Equal(t, 20.0, *stats.Max)
	})

	t.Run("all-absent window keeps its length as count", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		for i := 18; i < 21; i++ {
			values[i] = nil
		}
		stats := WindowStats(times, values, date, Evening, loc)

		assert.Equal(t, 3, stats.Count)
		assert.Nil(t, stats.Mean)
		assert.Nil(t, stats.Min)
		assert.Nil(t, stats.Max)
		assert.Nil(t, stats.Sum)
	})

	t.Run("uncovered window yields zero stats", func(t *testing.T) {
		times, values := hourlySeries(t, date, loc)
		stats := WindowStats(times, values, date.AddDate(0, 0, 7), Evening, loc)

		assert.Equal(t, SliceStats{}, stats)
	})
}
