package core

// Day-part buckets. Every hour 0-23 maps to exactly one bucket; Late Night
// wraps around midnight (22-23 and 0-5).
const (
	Morning   = "Morning"
	Lunch     = "Lunch"
	Afternoon = "Afternoon"
	Evening   = "Evening"
	LateNight = "Late Night"
)

// DayPartOrder is the single canonical display order for day parts.
// Every aggregation that emits day parts references this list.
var DayPartOrder = []string{Morning, Lunch, Afternoon, Evening, LateNight}

// WeekdayOrder is the canonical Monday-first calendar order.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayPartFor buckets an hour of day.
func DayPartFor(hour int) string {
	switch {
	case hour >= 6 && hour < 11:
		return Morning
	case hour >= 11 && hour < 15:
		return Lunch
	case hour >= 15 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return LateNight
	}
}
