package meeting

import "time"

const (
	// Meetings start on the hour from 09:00 through 16:00 local time.
	// They run 30 minutes; closing the grid at 17:00 keeps a buffer at
	// the end of the business day.
	businessOpenHour  = 9
	businessCloseHour = 17

	// DefaultHorizonDays is how far ahead the booking calendar opens.
	DefaultHorizonDays = 90
)

// Slot is one bookable start time in the business-hours grid.
type Slot struct {
	Start     time.Time
	Available bool
	Date      string // calendar day, YYYY-MM-DD
	Weekday   string
}

// horizonBounds returns the half-open interval [from, to) covered by a
// grid anchored at now.
func horizonBounds(now time.Time, horizonDays int) (time.Time, time.Time) {
	year, month, day := now.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, horizonDays)
}

// slotGrid returns every candidate start time from the day of now
// through horizonDays days out, in chronological order, skipping
// Saturdays and Sundays. The grid is stateless and recomputed from
// scratch on every call.
func slotGrid(now time.Time, horizonDays int) []time.Time {
	loc := now.Location()
	from, _ := horizonBounds(now, horizonDays)

	grid := make([]time.Time, 0, horizonDays*(businessCloseHour-businessOpenHour))
	for offset := 0; offset < horizonDays; offset++ {
		d := from.AddDate(0, 0, offset)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := businessOpenHour; hour < businessCloseHour; hour++ {
			grid = append(grid, time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc))
		}
	}
	return grid
}
