package domain

import "fmt"

// DayPart names one of the four fixed local-time windows a query can target.
type DayPart int

const (
	Morning DayPart = iota
	Afternoon
	Evening
	Night
)

// dayPartWindow is a day-part's local wall-clock interval. endNextDay marks
// the one interval that crosses midnight, keeping that case a structural
// property of the table rather than a string comparison at slice time.
type dayPartWindow struct {
	startHour  int
	endHour    int
	endNextDay bool
}

var dayPartWindows = [...]dayPartWindow{
	Morning:   {startHour: 6, endHour: 12},
	Afternoon: {startHour: 12, endHour: 18},
	Evening:   {startHour: 18, endHour: 21},
	Night:     {startHour: 21, endHour: 6, endNextDay: true},
}

var dayPartNames = [...]string{
	Morning:   "Morning",
	Afternoon: "Afternoon",
	Evening:   "Evening",
	Night:     "Night",
}

// ParseDayPart maps a window name to its DayPart. Unrecognized names resolve
// to Evening, the product's default window, rather than failing.
func ParseDayPart(name string) DayPart {
	for part, n := range dayPartNames {
		if n == name {
			return DayPart(part)
		}
	}
	return Evening
}

// normalize folds out-of-range values onto the Evening fallback so table
// lookups stay total even for a zero-value or corrupted DayPart.
func (d DayPart) normalize() DayPart {
	if d < Morning || d > Night {
		return Evening
	}
	return d
}

// String returns the display name used in verdicts and API payloads.
func (d DayPart) String() string {
	return dayPartNames[d.normalize()]
}

// Label returns the window's local clock interval for display,
// e.g. "06:00-12:00".
func (d DayPart) Label() string {
	w := dayPartWindows[d.normalize()]
	return fmt.Sprintf("%02d:00-%02d:00", w.startHour, w.endHour)
}
