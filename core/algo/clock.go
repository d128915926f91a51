package algo

import (
	"math"
	"strconv"

	"github.com/huangsam/motionlens/schema"
)

// ClockTick is one labelled hour on the radial clock.
type ClockTick struct {
	Hour  int     `json:"hour"`
	Label string  `json:"label"`
	Angle float64 `json:"angle"` // radians clockwise from 12 o'clock
}

// ClockPeriod returns the number of hours around the dial.
func ClockPeriod(mode schema.ClockMode) int {
	if mode == schema.Clock12h {
		return 12
	}
	return schema.HoursPerDay
}

// ClockFace returns the dial ticks for mode. In 12h mode the top tick reads 12.
func ClockFace(mode schema.ClockMode) []ClockTick {
	period := ClockPeriod(mode)
	ticks := make([]ClockTick, period)
	for h := range period {
		label := strconv.Itoa(h)
		if mode == schema.Clock12h && h == 0 {
			label = "12"
		}
		ticks[h] = ClockTick{Hour: h, Label: label, Angle: HourAngle(h, mode)}
	}
	return ticks
}

// HourAngle returns the dial angle of hour. Hours beyond the period wrap around.
func HourAngle(hour int, mode schema.ClockMode) float64 {
	period := ClockPeriod(mode)
	return 2 * math.Pi * float64(hour%period) / float64(period)
}

// HourArc returns the start and end angles of the wedge for hour.
func HourArc(hour int, mode schema.ClockMode) (float64, float64) {
	start := HourAngle(hour, mode)
	return start, start + 2*math.Pi/float64(ClockPeriod(mode))
}
