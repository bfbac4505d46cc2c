package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDayPart(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		assert.Equal(t, Morning, ParseDayPart("Morning"))
		assert.Equal(t, Afternoon, ParseDayPart("Afternoon"))
		assert.Equal(t, Evening, ParseDayPart("Evening"))
		assert.Equal(t, Night, ParseDayPart("Night"))
	})

	t.Run("unknown names fall back to Evening", func(t *testing.T) {
		assert.Equal(t, Evening, ParseDayPart(""))
		assert.Equal(t, Evening, ParseDayPart("morning"))
		assert.Equal(t, Evening, ParseDayPart("Dawn"))
	})
}

func TestDayPart_String(t *testing.T) {
	assert.Equal(t, "Morning", Morning.String())
	assert.Equal(t, "Night", Night.String())
	assert.Equal(t, "Evening", DayPart(99).String())
}

func TestDayPart_Label(t *testing.T) {
	assert.Equal(t, "06:00-12:00", Morning.Label())
	assert.Equal(t, "12:00-18:00", Afternoon.Label())
	assert.Equal(t, "18:00-21:00", Evening.Label())
	assert.Equal(t, "21:00-06:00", Night.Label())
}

func TestWindowBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2026, time.September, 12, 14, 30, 0, 0, time.UTC)

	t.Run("morning", func(t *testing.T) {
		start, end := WindowBounds(date, Morning, loc)
		assert.Equal(t, time.Date(2026, 9, 12, 6, 0, 0, 0, loc), start)
		assert.Equal(t, time.Date(2026, 9, 12, 12, 0, 0, 0, loc), end)
	})

	t.Run("night crosses midnight", func(t *testing.T) {
		start, end := WindowBounds(date, Night, loc)
		assert.Equal(t, time.Date(2026, 9, 12, 21, 0, 0, 0, loc), start)
		assert.Equal(t, time.Date(2026, 9, 13, 6, 0, 0, 0, loc), end)
	})

	t.Run("time-of-day on target date is ignored", func(t *testing.T) {
		morningStart, _ := WindowBounds(date, Evening, loc)
		lateStart, _ := WindowBounds(date.Add(9*time.Hour), Evening, loc)
		assert.Equal(t, morningStart, lateStart)
	})
}
